package commands

import (
	"context"
)

// StartPreparationCommandHandler moves an order from Created to Preparing.
// Preparation has no notification obligation.
type StartPreparationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartPreparationCommandHandler creates a handler for starting preparation.
func NewStartPreparationCommandHandler(uowFactory OrderUoWFactory) StartPreparationCommandHandler {
	return StartPreparationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start-preparation command.
// Returns an error matching errs.ErrInvalidState if the order is not in the
// Created status.
func (h StartPreparationCommandHandler) Handle(ctx context.Context, cmd StartPreparationCommand) error {
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

	if err = orderAggregate.StartPreparation(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
