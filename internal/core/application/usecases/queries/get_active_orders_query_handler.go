package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads the dashboard's order list straight from
// the database, skipping the aggregate layer.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query and returns all non-terminal orders sorted by id.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			partner_id,
			partner_name,
			latitude,
			longitude,
			position_updated_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY id
	`, order.StatusDelivered.String(), order.StatusDeclined.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			status      string
			partnerID   uuid.NullUUID
			partnerName sql.NullString
			latitude    sql.NullFloat64
			longitude   sql.NullFloat64
			updatedAt   sql.NullTime
		)

		if err = rows.Scan(&id, &status, &partnerID, &partnerName,
			&latitude, &longitude, &updatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp := GetActiveOrdersQueryResponse{
			ID:     orderID,
			Status: status,
		}

		if partnerID.Valid {
			boundID, pidErr := kernel.UUIDFromBytes(partnerID.UUID[:])
			if pidErr != nil {
				return nil, pidErr
			}
			resp.PartnerID = &boundID
			resp.PartnerName = partnerName.String
		}

		if latitude.Valid && longitude.Valid && updatedAt.Valid {
			resp.HasPosition = true
			resp.Latitude = latitude.Float64
			resp.Longitude = longitude.Float64
			resp.UpdatedAt = updatedAt.Time.UTC()
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
