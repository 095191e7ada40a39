package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// DeclineOrderResult carries the notification outcome of a committed decline.
// The outcome is meaningful only when a partner was bound at decline time.
type DeclineOrderResult struct {
	NotificationOutcome
}

// DeclineOrderCommandHandler cancels an order. If a partner was bound the
// handler releases them in the same transaction and pushes a cancellation
// notice to their device after the commit.
type DeclineOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   pushNotifier
	logger     *slog.Logger
}

// NewDeclineOrderCommandHandler creates a handler for order cancellation.
func NewDeclineOrderCommandHandler(
	uowFactory UoWFactory,
	gateway ports.NotificationGateway,
	logger *slog.Logger,
) DeclineOrderCommandHandler {
	return DeclineOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newPushNotifier(gateway, logger),
		logger:     logger.With("handler", "decline_order"),
	}
}

// Handle processes the decline command.
// Returns an error matching errs.ErrInvalidState if the order is already in
// a terminal state.
func (h DeclineOrderCommandHandler) Handle(
	ctx context.Context, cmd DeclineOrderCommand,
) (DeclineOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeclineOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeclineOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return DeclineOrderResult{}, err
	}

	var boundPartnerID *kernel.UUID
	if binding := orderAggregate.Binding(); binding != nil {
		id := binding.PartnerID()
		boundPartnerID = &id
	}

	if err = orderAggregate.Decline(); err != nil {
		return DeclineOrderResult{}, err
	}

	fcmToken := ""
	if boundPartnerID != nil {
		// The decline must commit even if the partner record has drifted; a
		// missing record just disables the release and the notification.
		partnerAggregate, getErr := uow.PartnerRepository().Get(ctx, *boundPartnerID)
		if getErr != nil {
			h.logger.WarnContext(ctx, "Bound partner lookup failed during decline",
				"partner_id", *boundPartnerID, "error", getErr)
			boundPartnerID = nil
		} else {
			partnerAggregate.Release()
			if err = uow.PartnerRepository().Update(ctx, partnerAggregate); err != nil {
				return DeclineOrderResult{}, err
			}
			fcmToken = partnerAggregate.FCMToken()
		}
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return DeclineOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeclineOrderResult{}, err
	}

	if boundPartnerID == nil {
		return DeclineOrderResult{NotificationOutcome: notificationSucceeded()}, nil
	}

	if err = uow.PartnerRepository().IncrementActiveOrders(ctx, *boundPartnerID, -1); err != nil {
		h.logger.WarnContext(ctx, "Active order counter decrement failed",
			"partner_id", *boundPartnerID, "error", err)
	}

	outcome := h.notifier.notify(ctx, fcmToken,
		"Delivery cancelled",
		"Order "+cmd.OrderID().String()+" has been cancelled",
		map[string]string{
			"type":    "order_declined",
			"orderId": cmd.OrderID().String(),
		})

	return DeclineOrderResult{NotificationOutcome: outcome}, nil
}
