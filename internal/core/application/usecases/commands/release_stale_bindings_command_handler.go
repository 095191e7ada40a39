package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ReleaseStaleBindingsCommandHandler returns abandoned bindings to the
// seeking pool. A binding is stale when the assigned partner has neither
// accepted nor rejected within the staleness window; the sweep treats the
// timeout as a rejection so the partner is skipped on the next dispatch
// round.
//
// Each order is released in its own transaction: one conflicting write (the
// partner accepting at the last moment) must not abort the whole sweep.
type ReleaseStaleBindingsCommandHandler struct {
	uowFactory OrderUoWFactory
	staleness  time.Duration
	logger     *slog.Logger
}

// NewReleaseStaleBindingsCommandHandler creates a handler for the stale
// binding sweep with the given staleness window.
func NewReleaseStaleBindingsCommandHandler(
	uowFactory OrderUoWFactory,
	staleness time.Duration,
	logger *slog.Logger,
) ReleaseStaleBindingsCommandHandler {
	return ReleaseStaleBindingsCommandHandler{
		uowFactory: uowFactory,
		staleness:  staleness,
		logger:     logger.With("handler", "release_stale_bindings"),
	}
}

// Handle processes one sweep. Individual order failures are logged and
// skipped; the sweep itself only fails when the candidate list cannot be
// read.
func (h ReleaseStaleBindingsCommandHandler) Handle(ctx context.Context, cmd ReleaseStaleBindingsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-h.staleness)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	staleOrders, err := uow.OrderRepository().GetAllBoundBefore(ctx, cutoff)
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
		h.logger.WarnContext(ctx, "Sweep read rollback failed", "error", rollbackErr)
	}
	if err != nil {
		return err
	}

	released := 0
	for _, staleOrder := range staleOrders {
		if err := h.releaseOne(ctx, staleOrder.ID(), cutoff); err != nil {
			h.logger.WarnContext(ctx, "Stale binding release skipped",
				"order_id", staleOrder.ID(), "error", err)
			continue
		}
		released++
	}

	if len(staleOrders) > 0 {
		h.logger.InfoContext(ctx, "Stale binding sweep finished",
			"candidates", len(staleOrders), "released", released)
	}

	return nil
}

// releaseOne re-reads the order inside its own transaction and applies the
// timeout rejection. The re-read closes the gap between the sweep's
// candidate list and the current document state: an order accepted since the
// list was taken no longer qualifies and is left alone.
func (h ReleaseStaleBindingsCommandHandler) releaseOne(
	ctx context.Context, orderID kernel.UUID, cutoff time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	binding := orderAggregate.Binding()
	assignedAt := orderAggregate.AssignedAt()
	if binding == nil || orderAggregate.AcceptedAt() != nil ||
		assignedAt == nil || assignedAt.After(cutoff) {
		return nil
	}

	if err = orderAggregate.Reject(binding.PartnerID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
