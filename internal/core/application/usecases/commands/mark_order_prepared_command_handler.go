package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// MarkOrderPreparedResult carries the notification outcome of a committed
// prepared transition.
type MarkOrderPreparedResult struct {
	NotificationOutcome
}

// MarkOrderPreparedCommandHandler moves an order from Preparing to Prepared.
//
// When a partner is already bound, the partner record is resolved before the
// commit: a missing record at that point is a data integrity fault and fails
// the operation. A missing device token on an existing record, by contrast,
// is a soft notification failure after the commit.
type MarkOrderPreparedCommandHandler struct {
	uowFactory UoWFactory
	notifier   pushNotifier
}

// NewMarkOrderPreparedCommandHandler creates a handler for the prepared
// transition.
func NewMarkOrderPreparedCommandHandler(
	uowFactory UoWFactory,
	gateway ports.NotificationGateway,
	logger *slog.Logger,
) MarkOrderPreparedCommandHandler {
	return MarkOrderPreparedCommandHandler{
		uowFactory: uowFactory,
		notifier:   newPushNotifier(gateway, logger),
	}
}

// Handle processes the mark-prepared command.
// Returns an error matching errs.ErrInvalidState if the order is not in the
// Preparing status, and errs.ErrObjectNotFound if the order - or a bound
// partner's record - is absent.
func (h MarkOrderPreparedCommandHandler) Handle(
	ctx context.Context, cmd MarkOrderPreparedCommand,
) (MarkOrderPreparedResult, error) {
	if err := cmd.Validate(); err != nil {
		return MarkOrderPreparedResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MarkOrderPreparedResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return MarkOrderPreparedResult{}, err
	}

	if err = orderAggregate.MarkPrepared(time.Now().UTC()); err != nil {
		return MarkOrderPreparedResult{}, err
	}

	// Resolve the bound partner's device token inside the transaction so a
	// dangling binding surfaces as a hard error before the commit.
	fcmToken := ""
	notifyPartner := false
	if binding := orderAggregate.Binding(); binding != nil {
		partnerAggregate, getErr := uow.PartnerRepository().Get(ctx, binding.PartnerID())
		if getErr != nil {
			return MarkOrderPreparedResult{}, getErr
		}
		fcmToken = partnerAggregate.FCMToken()
		notifyPartner = true
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return MarkOrderPreparedResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MarkOrderPreparedResult{}, err
	}

	outcome := notificationSucceeded()
	if notifyPartner {
		outcome = h.notifier.notify(ctx, fcmToken,
			"Order ready for pickup",
			"Order "+cmd.OrderID().String()+" is prepared and waiting",
			map[string]string{
				"type":    "order_prepared",
				"orderId": cmd.OrderID().String(),
			})
	}

	return MarkOrderPreparedResult{NotificationOutcome: outcome}, nil
}
