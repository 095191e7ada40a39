package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPositionQueryHandler reads an order's last-known position straight from
// the database, bypassing the aggregate. The read is still gated by the same
// authorization rules the write side enforces.
type GetPositionQueryHandler struct {
	db *gorm.DB
}

// NewGetPositionQueryHandler creates a handler for position queries.
func NewGetPositionQueryHandler(db *gorm.DB) GetPositionQueryHandler {
	return GetPositionQueryHandler{db: db}
}

// Handle executes the position query.
// Returns an error matching errs.ErrObjectNotFound if the order does not
// exist and errs.ErrPermissionDenied if the caller may not see the order.
func (h GetPositionQueryHandler) Handle(
	ctx context.Context,
	query GetPositionQuery,
) (GetPositionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPositionQueryResponse{}, err
	}

	var (
		customerID uuid.UUID
		partnerID  uuid.NullUUID
		latitude   sql.NullFloat64
		longitude  sql.NullFloat64
		updatedAt  sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			customer_id,
			partner_id,
			latitude,
			longitude,
			position_updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&customerID, &partnerID, &latitude, &longitude, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPositionQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetPositionQueryResponse{}, err
	}

	if err = authorizePositionRead(query, customerID, partnerID); err != nil {
		return GetPositionQueryResponse{}, err
	}

	response := GetPositionQueryResponse{OrderID: query.OrderID()}
	if !latitude.Valid || !longitude.Valid || !updatedAt.Valid {
		return response, nil
	}

	response.HasPosition = true
	response.Latitude = latitude.Float64
	response.Longitude = longitude.Float64
	response.UpdatedAt = updatedAt.Time.UTC()
	return response, nil
}

// authorizePositionRead applies the read-access rules: admins see everything,
// the bound partner sees their order, the owning customer sees their order.
func authorizePositionRead(query GetPositionQuery, customerID uuid.UUID, partnerID uuid.NullUUID) error {
	switch query.CallerRole() {
	case kernel.RoleAdmin:
		return nil
	case kernel.RoleDelivery:
		if partnerID.Valid && partnerID.UUID == query.CallerID().Bytes() {
			return nil
		}
	case kernel.RoleCustomer:
		if customerID == query.CallerID().Bytes() {
			return nil
		}
	case kernel.RoleUnknown:
	}
	return errs.NewPermissionDeniedError("caller may not view this order's position")
}
