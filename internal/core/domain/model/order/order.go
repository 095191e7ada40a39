package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order represents a food-delivery order in the system. It is the aggregate
// root that manages the delivery lifecycle from placement through partner
// assignment and live tracking to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a valid owning customer
//   - A partner binding is set by at most one successful assignment call;
//     once set it is immutable until an explicit rejection clears it
//   - Partners who rejected the order accumulate in an append-only set
//   - Position writes are accepted only from the bound partner and only
//     while the order is not in a terminal state
//   - Status transitions follow the rules encoded in Status
//
// The Order document is the single unit of mutual exclusion: the aggregate
// carries an optimistic-concurrency version that the persistence adapter
// compares on every conditional update, so concurrent writers across service
// instances are serialized through the store rather than through local locks.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the owning customer, used for read authorization
	customerID kernel.UUID

	// status is the current stage in the delivery lifecycle
	status Status

	// binding is the active partner assignment (nil if unassigned)
	binding *PartnerBinding

	// rejectedBy holds the ids of partners who declined this order
	rejectedBy []kernel.UUID

	// position is the last-known position reported by the bound partner
	position *Position

	// transition timestamps, each set when its transition commits
	assignedAt  *time.Time
	preparedAt  *time.Time
	acceptedAt  *time.Time
	deliveredAt *time.Time

	// version is the optimistic-concurrency token compared by conditional updates
	version int64

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in the Created status.
// This is the only way to create a valid new Order, ensuring all business
// invariants hold from the start.
func NewOrder(id kernel.UUID, customerID kernel.UUID) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		status:        StatusCreated,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order aggregate from persisted state.
// Intended for repository implementations only; it validates the identity
// fields and the status but trusts the stored combination of binding,
// position and timestamps.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	status Status,
	binding *PartnerBinding,
	rejectedBy []kernel.UUID,
	position *Position,
	assignedAt, preparedAt, acceptedAt, deliveredAt *time.Time,
	version int64,
) (*Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if binding != nil {
		if err := binding.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		status:        status,
		binding:       binding,
		rejectedBy:    rejectedBy,
		position:      position,
		assignedAt:    assignedAt,
		preparedAt:    preparedAt,
		acceptedAt:    acceptedAt,
		deliveredAt:   deliveredAt,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the owning customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current delivery-lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Binding returns a copy of the active partner binding. Returns nil if no
// partner is currently bound.
func (o *Order) Binding() *PartnerBinding {
	if o.binding == nil {
		return nil
	}
	binding := *o.binding
	return &binding
}

// RejectedBy returns a copy of the set of partner ids who declined this order.
func (o *Order) RejectedBy() []kernel.UUID {
	rejected := make([]kernel.UUID, len(o.rejectedBy))
	copy(rejected, o.rejectedBy)
	return rejected
}

// Position returns a copy of the last-known position. Returns nil if no
// position was ever reported; absence of a live position is a normal,
// expected state, not a failure.
func (o *Order) Position() *Position {
	if o.position == nil {
		return nil
	}
	position := *o.position
	return &position
}

// AssignedAt returns the time of the last successful assignment, nil if never assigned.
func (o *Order) AssignedAt() *time.Time { return copyTime(o.assignedAt) }

// PreparedAt returns the time the kitchen confirmed preparation, nil if not yet prepared.
func (o *Order) PreparedAt() *time.Time { return copyTime(o.preparedAt) }

// AcceptedAt returns the time the bound partner accepted, nil if not yet accepted.
func (o *Order) AcceptedAt() *time.Time { return copyTime(o.acceptedAt) }

// DeliveredAt returns the time of delivery, nil if not yet delivered.
func (o *Order) DeliveredAt() *time.Time { return copyTime(o.deliveredAt) }

// Version returns the optimistic-concurrency token of the loaded aggregate.
func (o *Order) Version() int64 {
	return o.version
}

// IsOwnedBy reports whether the given customer owns this order.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// IsBoundTo reports whether the given partner holds the active binding.
func (o *Order) IsBoundTo(partnerID kernel.UUID) bool {
	return o.binding != nil && o.binding.IsHeldBy(partnerID)
}

// HasRejected reports whether the given partner previously declined this order.
func (o *Order) HasRejected(partnerID kernel.UUID) bool {
	for _, id := range o.rejectedBy {
		if id.IsEqual(partnerID) {
			return true
		}
	}
	return false
}

// AssignPartner binds a delivery partner to the order.
//
// Business rules enforced here:
//   - Terminal orders reject the assignment with an InvalidStateError
//   - An existing binding is never overwritten: a second assignment returns
//     a ConflictError ("order already assigned to a partner")
//   - The order status must allow assignment (pre-assignment states only)
//   - The current status is preserved, except that an order actively seeking
//     a partner moves to PartnerBound
//
// The at-most-once guarantee across concurrent service instances is completed
// by the persistence adapter: this method decides against the freshly read
// state, and the conditional update rejects the loser of a write race.
func (o *Order) AssignPartner(binding PartnerBinding, now time.Time) error {
	if err := binding.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("assign partner", o.status.String())
	}
	if o.binding != nil {
		return errs.NewConflictError("order already assigned to a partner")
	}
	if !o.status.AllowsAssignment() {
		return errs.NewInvalidStateError("assign partner", o.status.String())
	}

	o.binding = &binding
	o.assignedAt = &now
	if o.status == StatusSeekingPartner {
		o.status = StatusPartnerBound
	}
	return nil
}

// Accept records that the bound partner confirmed the delivery.
// Only the partner holding the binding may accept; the order moves to the
// Accepted status and the acceptance time is stamped exactly once.
func (o *Order) Accept(partnerID kernel.UUID, now time.Time) error {
	if err := o.requireBoundPartner("accept order", partnerID); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.acceptedAt == nil {
		o.acceptedAt = &now
	}
	return nil
}

// Reject records that the bound partner declined the delivery.
// The partner id is appended to the rejection set (append-only), the active
// binding is cleared, and the order returns to SeekingPartner so the external
// dispatch collaborator can pick the next candidate. Historical transition
// timestamps are kept.
func (o *Order) Reject(partnerID kernel.UUID) error {
	if err := o.requireBoundPartner("reject order", partnerID); err != nil {
		return err
	}

	newStatus, err := o.status.SeekPartner()
	if err != nil {
		return err
	}

	if !o.HasRejected(partnerID) {
		o.rejectedBy = append(o.rejectedBy, partnerID)
	}
	o.binding = nil
	o.status = newStatus
	return nil
}

// StartPreparation moves the order from Created to Preparing.
func (o *Order) StartPreparation() error {
	newStatus, err := o.status.StartPreparation()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkPrepared records the kitchen's confirmation that the order is ready.
// The preparation time is stamped exactly once.
func (o *Order) MarkPrepared(now time.Time) error {
	newStatus, err := o.status.MarkPrepared()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.preparedAt == nil {
		o.preparedAt = &now
	}
	return nil
}

// Dispatch records that the bound partner picked the order up.
func (o *Order) Dispatch(partnerID kernel.UUID) error {
	if err := o.requireBoundPartner("mark dispatched", partnerID); err != nil {
		return err
	}

	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver records that the bound partner delivered the order.
// Delivered is terminal: no assignment, position write or further transition
// is accepted afterwards. The delivery time is stamped exactly once.
func (o *Order) Deliver(partnerID kernel.UUID, now time.Time) error {
	if err := o.requireBoundPartner("mark delivered", partnerID); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.deliveredAt == nil {
		o.deliveredAt = &now
	}
	return nil
}

// Decline cancels the order. Declined is terminal and reachable from every
// non-terminal state; afterwards the Assignment Manager and Position Tracker
// reject all mutating calls with an InvalidStateError.
func (o *Order) Decline() error {
	newStatus, err := o.status.Decline()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// RecordPosition overwrites the order's last-known position.
//
// Authorization: only the partner holding the active binding may report
// positions; anyone else, including partners of other orders, receives a
// PermissionDeniedError. Terminal orders reject the write with an
// InvalidStateError. No history is retained (last-write-wins), and ordering
// under out-of-order network delivery is intentionally not guaranteed.
func (o *Order) RecordPosition(partnerID kernel.UUID, point kernel.GeoPoint, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("report position", o.status.String())
	}
	if o.binding == nil || !o.binding.IsHeldBy(partnerID) {
		return errs.NewPermissionDeniedError("caller is not the assigned partner")
	}

	position, err := NewPosition(point, now)
	if err != nil {
		return err
	}

	o.position = &position
	return nil
}

// requireBoundPartner validates that the order is mutable and that the given
// partner holds the active binding. A missing binding is an invalid state
// ("not yet partner-bound"); a mismatched identity is a permission failure.
func (o *Order) requireBoundPartner(operation string, partnerID kernel.UUID) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError(operation, o.status.String())
	}
	if o.binding == nil {
		return errs.NewInvalidStateErrorWithCause(operation, o.status.String(),
			errors.New("no partner is bound to the order"))
	}
	if !o.binding.IsHeldBy(partnerID) {
		return errs.NewPermissionDeniedError("caller is not the assigned partner")
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
