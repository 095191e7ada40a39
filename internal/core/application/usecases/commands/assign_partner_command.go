package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand represents a request to bind a delivery partner to an
// order. The candidate partner is chosen by the external dispatch
// collaborator; this command only performs the binding itself and carries a
// denormalized snapshot of the partner's display data.
//
// Example:
//
//	cmd, err := NewAssignPartnerCommand(orderID, partnerID, "Ravi", "+919000000001")
//	if err != nil {
//	    return fmt.Errorf("invalid assignment data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // a concurrent assignment won the race
//	}
type AssignPartnerCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	partnerID    kernel.UUID
	partnerName  string
	partnerPhone string

	guard guard.ConstructorGuard
}

// NewAssignPartnerCommand creates a command to bind a partner to an order.
// Validates that both identifiers are valid and the partner name is present.
func NewAssignPartnerCommand(
	orderID kernel.UUID,
	partnerID kernel.UUID,
	partnerName string,
	partnerPhone string,
) (AssignPartnerCommand, error) {
	cmd := AssignPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
		cmd.setPartnerName(partnerName),
		cmd.setPartnerPhone(partnerPhone),
	); err != nil {
		return AssignPartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

// OrderID returns the order to bind the partner to.
func (c AssignPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the identifier of the partner to bind.
func (c AssignPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// PartnerName returns the partner's display name snapshot.
func (c AssignPartnerCommand) PartnerName() string {
	return c.partnerName
}

// PartnerPhone returns the partner's phone number snapshot.
func (c AssignPartnerCommand) PartnerPhone() string {
	return c.partnerPhone
}

func (c *AssignPartnerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	c.partnerID = partnerID
	return nil
}

func (c *AssignPartnerCommand) setPartnerName(partnerName string) error {
	if partnerName == "" {
		return errs.NewValueIsRequiredError("partnerName")
	}
	c.partnerName = partnerName
	return nil
}

func (c *AssignPartnerCommand) setPartnerPhone(partnerPhone string) error {
	if partnerPhone == "" {
		return errs.NewValueIsRequiredError("partnerPhone")
	}
	c.partnerPhone = partnerPhone
	return nil
}
