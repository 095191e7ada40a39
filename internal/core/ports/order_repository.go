// Package ports defines the contracts between the fulfillment core and its
// infrastructure collaborators: the transactional document store and the
// push-notification gateway. These interfaces enable dependency inversion
// and testability; the core holds no authoritative in-process state, so
// every decision round-trips through the store and multiple concurrent
// service instances stay consistent.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update is a conditional write: it only applies if the stored document still
// carries the version the aggregate was loaded with, and returns an error
// matching errs.ErrConflict when a concurrent writer got there first. This is
// how the "at most one partner assigned per order" invariant is enforced
// across independent service instances - through the store's compare-and-swap
// primitive, never through a local lock.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update conditionally persists changes to an existing order.
	// Returns an error matching errs.ErrObjectNotFound if the order does not
	// exist, or errs.ErrConflict if the stored version no longer matches the
	// version the aggregate was loaded with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an error matching errs.ErrObjectNotFound if absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders not in a terminal state.
	// Used by the dashboard's read API.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllBoundBefore retrieves partner-bound orders whose assignment is
	// older than the cutoff and that were never accepted. Used by the stale
	// binding release job to return abandoned bindings to the seeking pool.
	GetAllBoundBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
