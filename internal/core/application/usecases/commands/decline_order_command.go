package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeclineOrderCommandIsNotConstructed = errors.New(
	"DeclineOrderCommand must be created via NewDeclineOrderCommand constructor",
)

// DeclineOrderCommand represents a cancellation of an order by an operator
// or the customer, moving it to the terminal Declined state.
type DeclineOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeclineOrderCommand creates a command to decline an order.
func NewDeclineOrderCommand(orderID kernel.UUID) (DeclineOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeclineOrderCommand{}, err
	}

	return DeclineOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeclineOrderCommandIsNotConstructed)
}

// OrderID returns the order to decline.
func (c DeclineOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
