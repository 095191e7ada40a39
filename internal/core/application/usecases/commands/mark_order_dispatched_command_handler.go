package commands

import (
	"context"
)

// MarkOrderDispatchedCommandHandler moves an accepted order into Dispatched
// once the bound partner has picked it up from the restaurant.
type MarkOrderDispatchedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkOrderDispatchedCommandHandler creates a handler for the dispatch
// transition.
func NewMarkOrderDispatchedCommandHandler(uowFactory OrderUoWFactory) MarkOrderDispatchedCommandHandler {
	return MarkOrderDispatchedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command.
// Returns an error matching errs.ErrPermissionDenied if the caller is not
// the bound partner and errs.ErrInvalidState if the order is not Accepted.
func (h MarkOrderDispatchedCommandHandler) Handle(ctx context.Context, cmd MarkOrderDispatchedCommand) error {
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

	if err = orderAggregate.Dispatch(cmd.PartnerID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
