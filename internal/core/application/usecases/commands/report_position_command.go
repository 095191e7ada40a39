package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReportPositionCommandIsNotConstructed = errors.New(
	"ReportPositionCommand must be created via NewReportPositionCommand constructor",
)

// ReportPositionCommand represents a position report from the bound delivery
// partner. Coordinates are validated at construction so an out-of-range
// report is turned away before any store round-trip.
type ReportPositionCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID
	point     kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewReportPositionCommand creates a command to record the partner's
// current position against an order.
func NewReportPositionCommand(
	orderID kernel.UUID,
	partnerID kernel.UUID,
	latitude float64,
	longitude float64,
) (ReportPositionCommand, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return ReportPositionCommand{}, err
	}

	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return ReportPositionCommand{}, err
	}

	return ReportPositionCommand{
		orderID:   orderID,
		partnerID: partnerID,
		point:     point,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportPositionCommand) Validate() error {
	return c.guard.Validate(ErrReportPositionCommandIsNotConstructed)
}

// OrderID returns the order the position belongs to.
func (c ReportPositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the reporting partner's identifier.
func (c ReportPositionCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Point returns the reported coordinates.
func (c ReportPositionCommand) Point() kernel.GeoPoint {
	return c.point
}
