package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartPreparationCommandIsNotConstructed = errors.New(
	"StartPreparationCommand must be created via NewStartPreparationCommand constructor",
)

// StartPreparationCommand represents the restaurant beginning work on an
// order, moving it from Created to Preparing.
type StartPreparationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPreparationCommand creates a command to start order preparation.
func NewStartPreparationCommand(orderID kernel.UUID) (StartPreparationCommand, error) {
	if err := orderID.Validate(); err != nil {
		return StartPreparationCommand{}, err
	}

	return StartPreparationCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparationCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparationCommandIsNotConstructed)
}

// OrderID returns the order to start preparing.
func (c StartPreparationCommand) OrderID() kernel.UUID {
	return c.orderID
}
