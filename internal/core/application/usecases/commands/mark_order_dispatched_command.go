package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkOrderDispatchedCommandIsNotConstructed = errors.New(
	"MarkOrderDispatchedCommand must be created via NewMarkOrderDispatchedCommand constructor",
)

// MarkOrderDispatchedCommand represents the bound partner picking the order
// up from the restaurant and starting the delivery leg.
type MarkOrderDispatchedCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderDispatchedCommand creates a command to mark an order as picked
// up and in transit.
func NewMarkOrderDispatchedCommand(
	orderID kernel.UUID, partnerID kernel.UUID,
) (MarkOrderDispatchedCommand, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return MarkOrderDispatchedCommand{}, err
	}

	return MarkOrderDispatchedCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderDispatchedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderDispatchedCommandIsNotConstructed)
}

// OrderID returns the order being dispatched.
func (c MarkOrderDispatchedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the partner performing the pickup.
func (c MarkOrderDispatchedCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
