// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, including the conditional (version-compared) update that backs
// the at-most-once assignment guarantee.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The partner binding and the position are denormalized into nullable columns
// of the same row: the order document is the single unit of consistency, so
// binding, position and timestamps always commit together with the status.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"type:text;index"`

	PartnerID    *uuid.UUID `gorm:"type:uuid;index"`
	PartnerName  *string    `gorm:"type:text"`
	PartnerPhone *string    `gorm:"type:text"`

	RejectedBy pq.StringArray `gorm:"type:text[]"`

	Latitude          *float64   `gorm:"type:double precision"`
	Longitude         *float64   `gorm:"type:double precision"`
	PositionUpdatedAt *time.Time `gorm:"type:timestamptz"`

	AssignedAt  *time.Time `gorm:"type:timestamptz"`
	PreparedAt  *time.Time `gorm:"type:timestamptz"`
	AcceptedAt  *time.Time `gorm:"type:timestamptz"`
	DeliveredAt *time.Time `gorm:"type:timestamptz"`

	Version int64 `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
// Version is copied verbatim; the repository's write paths decide what to
// store (Add starts at 1, Update compares against the loaded version and
// writes the incremented one).
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		Status:      aggregate.Status().String(),
		AssignedAt:  aggregate.AssignedAt(),
		PreparedAt:  aggregate.PreparedAt(),
		AcceptedAt:  aggregate.AcceptedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		Version:     aggregate.Version(),
	}

	if binding := aggregate.Binding(); binding != nil {
		partnerID := binding.PartnerID().Bytes()
		name := binding.Name()
		phone := binding.Phone()
		dto.PartnerID = &partnerID
		dto.PartnerName = &name
		dto.PartnerPhone = &phone
	}

	rejected := aggregate.RejectedBy()
	dto.RejectedBy = make(pq.StringArray, 0, len(rejected))
	for _, id := range rejected {
		dto.RejectedBy = append(dto.RejectedBy, id.String())
	}

	if position := aggregate.Position(); position != nil {
		lat := position.Point().Latitude()
		lon := position.Point().Longitude()
		updatedAt := position.UpdatedAt()
		dto.Latitude = &lat
		dto.Longitude = &lon
		dto.PositionUpdatedAt = &updatedAt
	}

	return dto
}

// toDomain converts a database DTO to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var binding *order.PartnerBinding
	if dto.PartnerID != nil {
		partnerID, pidErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if pidErr != nil {
			return nil, pidErr
		}
		name := ""
		if dto.PartnerName != nil {
			name = *dto.PartnerName
		}
		phone := ""
		if dto.PartnerPhone != nil {
			phone = *dto.PartnerPhone
		}
		b, bindErr := order.NewPartnerBinding(partnerID, name, phone)
		if bindErr != nil {
			return nil, bindErr
		}
		binding = &b
	}

	rejectedBy := make([]kernel.UUID, 0, len(dto.RejectedBy))
	for _, raw := range dto.RejectedBy {
		rejectedID, rejErr := kernel.UUIDFromString(raw)
		if rejErr != nil {
			return nil, rejErr
		}
		rejectedBy = append(rejectedBy, rejectedID)
	}

	var position *order.Position
	if dto.Latitude != nil && dto.Longitude != nil && dto.PositionUpdatedAt != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if geoErr != nil {
			return nil, geoErr
		}
		p, posErr := order.NewPosition(point, *dto.PositionUpdatedAt)
		if posErr != nil {
			return nil, posErr
		}
		position = &p
	}

	return order.RestoreOrder(
		id,
		customerID,
		status,
		binding,
		rejectedBy,
		position,
		dto.AssignedAt,
		dto.PreparedAt,
		dto.AcceptedAt,
		dto.DeliveredAt,
		dto.Version,
	)
}
