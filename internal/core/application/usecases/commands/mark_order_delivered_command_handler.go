package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// MarkOrderDeliveredResult carries the notification outcome of a committed
// delivery.
type MarkOrderDeliveredResult struct {
	NotificationOutcome
}

// MarkOrderDeliveredCommandHandler completes a delivery. The order moves to
// its terminal Delivered state and, in the same transaction, the partner is
// released and becomes available for the next assignment. The workload
// counter decrement and the push are post-commit secondary effects.
type MarkOrderDeliveredCommandHandler struct {
	uowFactory UoWFactory
	notifier   pushNotifier
	logger     *slog.Logger
}

// NewMarkOrderDeliveredCommandHandler creates a handler for delivery
// completion.
func NewMarkOrderDeliveredCommandHandler(
	uowFactory UoWFactory,
	gateway ports.NotificationGateway,
	logger *slog.Logger,
) MarkOrderDeliveredCommandHandler {
	return MarkOrderDeliveredCommandHandler{
		uowFactory: uowFactory,
		notifier:   newPushNotifier(gateway, logger),
		logger:     logger.With("handler", "mark_order_delivered"),
	}
}

// Handle processes the delivery completion command.
// Returns an error matching errs.ErrPermissionDenied if the caller is not
// the bound partner and errs.ErrInvalidState if the order is not Accepted or
// Dispatched.
func (h MarkOrderDeliveredCommandHandler) Handle(
	ctx context.Context, cmd MarkOrderDeliveredCommand,
) (MarkOrderDeliveredResult, error) {
	if err := cmd.Validate(); err != nil {
		return MarkOrderDeliveredResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MarkOrderDeliveredResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return MarkOrderDeliveredResult{}, err
	}

	if err = orderAggregate.Deliver(cmd.PartnerID(), time.Now().UTC()); err != nil {
		return MarkOrderDeliveredResult{}, err
	}

	partnerAggregate, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		return MarkOrderDeliveredResult{}, err
	}
	partnerAggregate.Release()
	fcmToken := partnerAggregate.FCMToken()

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return MarkOrderDeliveredResult{}, err
	}

	if err = uow.PartnerRepository().Update(ctx, partnerAggregate); err != nil {
		return MarkOrderDeliveredResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MarkOrderDeliveredResult{}, err
	}

	if err = uow.PartnerRepository().IncrementActiveOrders(ctx, cmd.PartnerID(), -1); err != nil {
		h.logger.WarnContext(ctx, "Active order counter decrement failed",
			"partner_id", cmd.PartnerID(), "error", err)
	}

	outcome := h.notifier.notify(ctx, fcmToken,
		"Delivery completed",
		"Order "+cmd.OrderID().String()+" has been delivered",
		map[string]string{
			"type":    "order_delivered",
			"orderId": cmd.OrderID().String(),
		})

	return MarkOrderDeliveredResult{NotificationOutcome: outcome}, nil
}
