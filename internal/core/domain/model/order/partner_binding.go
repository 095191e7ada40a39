package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrPartnerBindingIsNotConstructed is returned when a PartnerBinding was not
// created through the NewPartnerBinding constructor.
var ErrPartnerBindingIsNotConstructed = errors.New(
	"PartnerBinding must be created via NewPartnerBinding constructor")

// PartnerBinding is the immutable link between an order and the single
// delivery partner responsible for it. A binding carries a denormalized
// snapshot of the partner's display data (name, phone) so the dashboard can
// render the assignment without a second lookup.
//
// A binding is set by at most one successful assignment call. Once set it is
// never overwritten in place; a rejection clears the active binding and the
// order returns to SeekingPartner for reassignment.
type PartnerBinding struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	name      string
	phone     string

	guard guard.ConstructorGuard
}

// NewPartnerBinding creates a binding for the given partner.
// The partner ID must be valid and the name must be non-empty; the phone
// number is kept verbatim for display and is required.
func NewPartnerBinding(partnerID kernel.UUID, name string, phone string) (PartnerBinding, error) {
	binding := PartnerBinding{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		binding.setPartnerID(partnerID),
		binding.setName(name),
		binding.setPhone(phone),
	); err != nil {
		return PartnerBinding{}, err
	}

	return binding, nil
}

// Validate ensures the binding was created through the constructor.
func (b PartnerBinding) Validate() error {
	return b.guard.Validate(ErrPartnerBindingIsNotConstructed)
}

// PartnerID returns the bound partner's identifier.
func (b PartnerBinding) PartnerID() kernel.UUID {
	return b.partnerID
}

// Name returns the partner's display name captured at assignment time.
func (b PartnerBinding) Name() string {
	return b.name
}

// Phone returns the partner's phone number captured at assignment time.
func (b PartnerBinding) Phone() string {
	return b.phone
}

// IsHeldBy reports whether the binding belongs to the given partner.
func (b PartnerBinding) IsHeldBy(partnerID kernel.UUID) bool {
	return b.partnerID.IsEqual(partnerID)
}

// String returns a human-readable representation for logging.
func (b PartnerBinding) String() string {
	return fmt.Sprintf("PartnerBinding(%s, %s)", b.partnerID, b.name)
}

func (b *PartnerBinding) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	b.partnerID = partnerID
	return nil
}

func (b *PartnerBinding) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("partner name")
	}
	b.name = name
	return nil
}

func (b *PartnerBinding) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("partner phone")
	}
	b.phone = phone
	return nil
}

// Position is the last-known geographic position of an order in transit,
// written by the bound delivery partner. Position history is not retained:
// each report overwrites the previous one (last-write-wins), and ordering of
// reports under out-of-order network delivery is not guaranteed.
type Position struct {
	point     kernel.GeoPoint
	updatedAt time.Time
}

// NewPosition creates a position snapshot from a validated geo point and the
// time of the report.
func NewPosition(point kernel.GeoPoint, updatedAt time.Time) (Position, error) {
	if err := point.Validate(); err != nil {
		return Position{}, err
	}
	if updatedAt.IsZero() {
		return Position{}, errs.NewValueIsRequiredError("position timestamp")
	}

	return Position{point: point, updatedAt: updatedAt}, nil
}

// Point returns the geographic coordinates of the snapshot.
func (p Position) Point() kernel.GeoPoint {
	return p.point
}

// UpdatedAt returns the time the snapshot was reported.
func (p Position) UpdatedAt() time.Time {
	return p.updatedAt
}
