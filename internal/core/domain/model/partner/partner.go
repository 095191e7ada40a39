// Package partner provides the DeliveryPartner aggregate for the fulfillment
// core. A delivery partner is the courier-side counterpart of an order's
// partner binding: it carries the push-notification channel, the availability
// flag and the active-order workload counter.
package partner

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrPartnerIsNotConstructed is returned when a DeliveryPartner was not
// created through a factory method.
var ErrPartnerIsNotConstructed = errors.New(
	"DeliveryPartner must be created via NewDeliveryPartner constructor")

// DeliveryPartner represents a delivery partner in the system.
// It is an aggregate root that manages the partner's notification channel,
// availability and current engagement.
//
// Business rules:
//   - A partner must have a valid UUID and a non-empty name
//   - The fcmToken is optional: an absent token disables push notifications
//     for this partner, it is never an error
//   - isAvailable=false implies currentOrderID is set; the two fields are
//     always updated together through Engage and Release
//   - activeOrders is a workload counter maintained by atomic store
//     increments; it may be transiently inconsistent with the order
//     documents and is never used for authorization decisions
type DeliveryPartner struct {
	// id uniquely identifies the partner
	id kernel.UUID

	// name is the partner's display name
	name string

	// phone is the partner's contact number
	phone string

	// fcmToken is the push-notification device token (empty disables pushes)
	fcmToken string

	// activeOrders counts assignments handed to this partner
	activeOrders int

	// isAvailable reports whether the partner can take a new delivery
	isAvailable bool

	// currentOrderID is the order the partner is currently delivering
	currentOrderID *kernel.UUID

	// guard ensures the partner was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryPartner creates a new available DeliveryPartner.
// The fcmToken may be empty; notifications are then skipped for this partner.
func NewDeliveryPartner(id kernel.UUID, name string, phone string, fcmToken string) (*DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &DeliveryPartner{
		id:          id,
		name:        name,
		phone:       phone,
		fcmToken:    fcmToken,
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryPartner reconstructs a DeliveryPartner from persisted state.
// Intended for repository implementations only. It enforces the availability
// invariant: an unavailable partner must reference a current order.
func RestoreDeliveryPartner(
	id kernel.UUID,
	name string,
	phone string,
	fcmToken string,
	activeOrders int,
	isAvailable bool,
	currentOrderID *kernel.UUID,
) (*DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if !isAvailable && currentOrderID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("partner availability",
			errors.New("unavailable partner must have a current order"))
	}

	return &DeliveryPartner{
		id:             id,
		name:           name,
		phone:          phone,
		fcmToken:       fcmToken,
		activeOrders:   activeOrders,
		isAvailable:    isAvailable,
		currentOrderID: currentOrderID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the partner was created through a factory method.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *DeliveryPartner) Name() string {
	return p.name
}

// Phone returns the partner's contact number.
func (p *DeliveryPartner) Phone() string {
	return p.phone
}

// FCMToken returns the push-notification device token, empty if the partner
// has no registered device.
func (p *DeliveryPartner) FCMToken() string {
	return p.fcmToken
}

// HasNotificationChannel reports whether the partner can receive pushes.
func (p *DeliveryPartner) HasNotificationChannel() bool {
	return p.fcmToken != ""
}

// ActiveOrders returns the workload counter value as loaded from the store.
func (p *DeliveryPartner) ActiveOrders() int {
	return p.activeOrders
}

// IsAvailable reports whether the partner can take a new delivery.
func (p *DeliveryPartner) IsAvailable() bool {
	return p.isAvailable
}

// CurrentOrderID returns the order the partner is currently delivering,
// nil when the partner is available.
func (p *DeliveryPartner) CurrentOrderID() *kernel.UUID {
	if p.currentOrderID == nil {
		return nil
	}
	id := *p.currentOrderID
	return &id
}

// Engage marks the partner as busy with the given order.
// Availability and the current order reference are updated together so the
// invariant "unavailable implies engaged" always holds. Engaging a partner
// already busy with a different order is a conflict.
func (p *DeliveryPartner) Engage(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if p.currentOrderID != nil && !p.currentOrderID.IsEqual(orderID) {
		return errs.NewConflictError("partner is already engaged with another order")
	}

	p.isAvailable = false
	p.currentOrderID = &orderID
	return nil
}

// Release marks the partner as available again, clearing the current order.
func (p *DeliveryPartner) Release() {
	p.isAvailable = true
	p.currentOrderID = nil
}

// UpdateFCMToken replaces the partner's push-notification device token.
// An empty token unregisters the device and disables notifications.
func (p *DeliveryPartner) UpdateFCMToken(token string) {
	p.fcmToken = token
}
