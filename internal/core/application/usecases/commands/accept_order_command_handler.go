package commands

import (
	"context"
	"time"
)

// AcceptOrderCommandHandler records the bound partner's acceptance of an
// order and engages the partner with it in the same transaction, so the
// partner's availability flag and current order always agree with the order
// side of the binding.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acceptance command.
// Returns an error matching errs.ErrPermissionDenied if the caller is not the
// bound partner, errs.ErrInvalidState if the order has no binding yet or is
// past acceptance, and errs.ErrConflict if the partner is already engaged
// with a different order.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = orderAggregate.Accept(cmd.PartnerID(), time.Now().UTC()); err != nil {
		return err
	}

	partnerAggregate, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	if err = partnerAggregate.Engage(cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.PartnerRepository().Update(ctx, partnerAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
