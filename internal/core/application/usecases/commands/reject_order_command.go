package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents the bound partner declining an order. The
// rejection clears the binding, records the partner in the order's rejection
// set and returns the order to the seeking pool.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command for a partner to reject an order.
func NewRejectOrderCommand(orderID kernel.UUID, partnerID kernel.UUID) (RejectOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return RejectOrderCommand{}, err
	}

	return RejectOrderCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the order being rejected.
func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the rejecting partner's identifier.
func (c RejectOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
