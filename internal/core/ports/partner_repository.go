package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner
// aggregates.
//
// IncrementActiveOrders is the store's atomic counter primitive. It is a
// secondary effect of assignment and delivery: callers log its failure and
// carry on, it must never roll back or fail the primary order transition.
type PartnerRepository interface {
	// Add persists a new delivery partner aggregate.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Update persists changes to an existing partner (availability, current
	// order, device token). Returns an error matching errs.ErrObjectNotFound
	// if the partner does not exist.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner by its unique identifier.
	// Returns an error matching errs.ErrObjectNotFound if absent.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// IncrementActiveOrders atomically adjusts the partner's workload counter
	// by delta (positive on assignment, negative on delivery).
	IncrementActiveOrders(ctx context.Context, id kernel.UUID, delta int) error
}
