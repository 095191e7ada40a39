package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkOrderDeliveredCommandIsNotConstructed = errors.New(
	"MarkOrderDeliveredCommand must be created via NewMarkOrderDeliveredCommand constructor",
)

// MarkOrderDeliveredCommand represents the bound partner completing the
// delivery. The transition carries a "delivered" notification obligation
// back to the partner's device.
type MarkOrderDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderDeliveredCommand creates a command to complete a delivery.
func NewMarkOrderDeliveredCommand(
	orderID kernel.UUID, partnerID kernel.UUID,
) (MarkOrderDeliveredCommand, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return MarkOrderDeliveredCommand{}, err
	}

	return MarkOrderDeliveredCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderDeliveredCommandIsNotConstructed)
}

// OrderID returns the order being completed.
func (c MarkOrderDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the partner completing the delivery.
func (c MarkOrderDeliveredCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
