// Package partnerrepo provides data transfer objects and mapping functions
// for delivery partner persistence.
package partnerrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO represents the database structure for persisting delivery
// partner aggregates.
type PartnerDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string     `gorm:"type:text;not null"`
	Phone          string     `gorm:"type:text;not null"`
	FCMToken       string     `gorm:"column:fcm_token;type:text"`
	ActiveOrders   int        `gorm:"not null;default:0"`
	IsAvailable    bool       `gorm:"not null;default:true"`
	CurrentOrderID *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for partner entities.
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// fromDomain converts a partner aggregate to its database representation.
func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	dto := PartnerDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Phone:        aggregate.Phone(),
		FCMToken:     aggregate.FCMToken(),
		ActiveOrders: aggregate.ActiveOrders(),
		IsAvailable:  aggregate.IsAvailable(),
	}

	if orderID := aggregate.CurrentOrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.CurrentOrderID = &raw
	}

	return dto
}

// toDomain converts a database DTO to a partner aggregate.
func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &orderID
	}

	return partner.RestoreDeliveryPartner(
		id,
		dto.Name,
		dto.Phone,
		dto.FCMToken,
		dto.ActiveOrders,
		dto.IsAvailable,
		currentOrderID,
	)
}
