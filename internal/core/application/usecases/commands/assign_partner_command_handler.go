package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// AssignPartnerResult is returned on a successful assignment. It echoes the
// binding so the caller can render the partner without a follow-up read, and
// carries the notification outcome as soft metadata.
type AssignPartnerResult struct {
	OrderID      string
	PartnerID    string
	PartnerName  string
	PartnerPhone string

	NotificationOutcome
}

// AssignPartnerCommandHandler binds a delivery partner to an order.
//
// The binding is written through the store's conditional update, so when two
// dispatch calls race for the same order exactly one commits and the other
// receives a conflict. After the commit the handler performs two best-effort
// side effects: incrementing the partner's workload counter and pushing a
// "new order" notification. Neither can fail the assignment.
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	notifier   pushNotifier
	logger     *slog.Logger
}

// NewAssignPartnerCommandHandler creates a handler for partner assignment.
func NewAssignPartnerCommandHandler(
	uowFactory UoWFactory,
	gateway ports.NotificationGateway,
	logger *slog.Logger,
) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		notifier:   newPushNotifier(gateway, logger),
		logger:     logger.With("handler", "assign_partner"),
	}
}

// Handle processes the assignment command.
//
// Returns an error matching errs.ErrConflict when the order already holds a
// binding or a concurrent assignment committed first, and an error matching
// errs.ErrInvalidState when the order's status does not admit assignment.
func (h AssignPartnerCommandHandler) Handle(
	ctx context.Context, cmd AssignPartnerCommand,
) (AssignPartnerResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignPartnerResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignPartnerResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return AssignPartnerResult{}, err
	}

	binding, err := order.NewPartnerBinding(cmd.PartnerID(), cmd.PartnerName(), cmd.PartnerPhone())
	if err != nil {
		return AssignPartnerResult{}, err
	}

	if err = orderAggregate.AssignPartner(binding, time.Now().UTC()); err != nil {
		return AssignPartnerResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return AssignPartnerResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignPartnerResult{}, err
	}

	result := AssignPartnerResult{
		OrderID:      cmd.OrderID().String(),
		PartnerID:    cmd.PartnerID().String(),
		PartnerName:  cmd.PartnerName(),
		PartnerPhone: cmd.PartnerPhone(),
	}
	result.NotificationOutcome = h.afterCommit(ctx, uow, cmd)

	return result, nil
}

// afterCommit runs the secondary effects of a committed assignment: the
// workload counter bump and the push to the partner's device. Failures are
// logged and folded into the outcome metadata.
func (h AssignPartnerCommandHandler) afterCommit(
	ctx context.Context, uow UoW, cmd AssignPartnerCommand,
) NotificationOutcome {
	partnerRepo := uow.PartnerRepository()

	if err := partnerRepo.IncrementActiveOrders(ctx, cmd.PartnerID(), 1); err != nil {
		h.logger.WarnContext(ctx, "Active order counter increment failed",
			"partner_id", cmd.PartnerID(), "error", err)
	}

	partnerAggregate, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		h.logger.WarnContext(ctx, "Partner lookup for notification failed",
			"partner_id", cmd.PartnerID(), "error", err)
		return notificationSkipped("partner record unavailable for notification")
	}

	return h.notifier.notify(ctx, partnerAggregate.FCMToken(),
		"New delivery assigned",
		"Order "+cmd.OrderID().String()+" has been assigned to you",
		map[string]string{
			"type":    "order_assigned",
			"orderId": cmd.OrderID().String(),
		})
}
