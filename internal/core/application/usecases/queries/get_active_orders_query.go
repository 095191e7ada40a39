package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order not yet in a terminal state for
// the operations dashboard. This is a parameterless query.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for all in-flight orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one dashboard row: the order's current
// stage, the assigned partner snapshot if any, and the last-known position
// if the partner has reported one.
type GetActiveOrdersQueryResponse struct {
	ID          kernel.UUID
	Status      string
	PartnerID   *kernel.UUID
	PartnerName string
	HasPosition bool
	Latitude    float64
	Longitude   float64
	UpdatedAt   time.Time
}
