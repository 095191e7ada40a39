package commands

import (
	"context"
	"time"
)

// ReportPositionResult echoes the server-side timestamp stamped on the
// accepted position report.
type ReportPositionResult struct {
	Timestamp time.Time
}

// ReportPositionCommandHandler records the bound partner's position against
// an order. Each accepted report overwrites the previous one; reports
// arriving out of order are applied as received, last write wins.
type ReportPositionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReportPositionCommandHandler creates a handler for position reporting.
func NewReportPositionCommandHandler(uowFactory OrderUoWFactory) ReportPositionCommandHandler {
	return ReportPositionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the position report.
// Returns an error matching errs.ErrPermissionDenied if the reporter is not
// the bound partner (or no partner is bound) and errs.ErrInvalidState if the
// order is already in a terminal state.
func (h ReportPositionCommandHandler) Handle(
	ctx context.Context, cmd ReportPositionCommand,
) (ReportPositionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReportPositionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReportPositionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return ReportPositionResult{}, err
	}

	now := time.Now().UTC()
	if err = orderAggregate.RecordPosition(cmd.PartnerID(), cmd.Point(), now); err != nil {
		return ReportPositionResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return ReportPositionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ReportPositionResult{}, err
	}

	return ReportPositionResult{Timestamp: now}, nil
}
