package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPositionQueryIsNotConstructed = errors.New(
	"GetPositionQuery must be created via NewGetPositionQuery constructor",
)

// GetPositionQuery retrieves the last-known position of an order for an
// authorized caller.
//
// Authorization is role-based and never silently degrades: an admin may read
// any order, the bound delivery partner may read their own order, the owning
// customer may read their own order, and everyone else receives a
// PermissionDeniedError rather than an empty result.
//
// Example:
//
//	query, err := NewGetPositionQuery(orderID, callerID, kernel.RoleCustomer)
//	if err != nil {
//	    return err
//	}
//	position, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	if !position.HasPosition {
//	    fmt.Println("no position reported yet")
//	}
type GetPositionQuery struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	callerID   kernel.UUID
	callerRole kernel.Role

	guard guard.ConstructorGuard
}

// NewGetPositionQuery creates a query for an order's last-known position.
func NewGetPositionQuery(
	orderID kernel.UUID, callerID kernel.UUID, callerRole kernel.Role,
) (GetPositionQuery, error) {
	if err := errors.Join(orderID.Validate(), callerID.Validate(), callerRole.Validate()); err != nil {
		return GetPositionQuery{}, err
	}

	return GetPositionQuery{
		orderID:    orderID,
		callerID:   callerID,
		callerRole: callerRole,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPositionQuery) Validate() error {
	return q.guard.Validate(ErrGetPositionQueryIsNotConstructed)
}

// OrderID returns the order whose position is requested.
func (q GetPositionQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CallerID returns the identity of the requester.
func (q GetPositionQuery) CallerID() kernel.UUID {
	return q.callerID
}

// CallerRole returns the role of the requester.
func (q GetPositionQuery) CallerRole() kernel.Role {
	return q.callerRole
}

// GetPositionQueryResponse is the position read model. HasPosition is false
// when the bound partner has never reported; that is a normal state of a
// young order, not an error.
type GetPositionQueryResponse struct {
	OrderID     kernel.UUID
	HasPosition bool
	Latitude    float64
	Longitude   float64
	UpdatedAt   time.Time
}
