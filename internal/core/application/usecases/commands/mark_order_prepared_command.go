package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkOrderPreparedCommandIsNotConstructed = errors.New(
	"MarkOrderPreparedCommand must be created via NewMarkOrderPreparedCommand constructor",
)

// MarkOrderPreparedCommand represents the restaurant finishing an order,
// moving it from Preparing to Prepared. If a partner is already bound the
// transition carries a "pickup ready" notification obligation.
type MarkOrderPreparedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderPreparedCommand creates a command to mark an order prepared.
func NewMarkOrderPreparedCommand(orderID kernel.UUID) (MarkOrderPreparedCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkOrderPreparedCommand{}, err
	}

	return MarkOrderPreparedCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderPreparedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderPreparedCommandIsNotConstructed)
}

// OrderID returns the order to mark as prepared.
func (c MarkOrderPreparedCommand) OrderID() kernel.UUID {
	return c.orderID
}
