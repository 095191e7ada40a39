package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the delivery-lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the correct business workflow.
//
// State transitions (not strictly linear):
//
//	Created ──> Preparing ──> Prepared ──> SeekingPartner ──> PartnerBound
//	                                            ^                  │
//	                                            └──(rejection)─────┤
//	                                                               v
//	                                 Delivered <── Dispatched <── Accepted
//
// A partner binding may also be set while the order is still Created,
// Preparing or Prepared; binding does not force a status change. Declined is
// reachable from every non-terminal state. Delivered and Declined are
// terminal: no further transitions are allowed.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCreated is the initial status when an order is first placed.
	StatusCreated

	// StatusPreparing indicates the kitchen has started preparing the order.
	StatusPreparing

	// StatusPrepared indicates the kitchen confirmed the order is ready
	// for pickup.
	StatusPrepared

	// StatusSeekingPartner indicates the order is waiting for a delivery
	// partner, either initially or after a rejection. Candidate search is
	// performed by an external dispatch collaborator.
	StatusSeekingPartner

	// StatusPartnerBound indicates a delivery partner has been bound to the
	// order while it was seeking one.
	StatusPartnerBound

	// StatusAccepted indicates the bound partner confirmed they will
	// deliver the order.
	StatusAccepted

	// StatusDispatched indicates the partner picked the order up and is
	// on the way to the customer.
	StatusDispatched

	// StatusDelivered indicates the order reached the customer.
	// This is a terminal state.
	StatusDelivered

	// StatusDeclined indicates the order was cancelled by the platform.
	// This is a terminal state reachable from any non-terminal state.
	StatusDeclined
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "Unknown",
		StatusCreated:        "Created",
		StatusPreparing:      "Preparing",
		StatusPrepared:       "Prepared",
		StatusSeekingPartner: "SeekingPartner",
		StatusPartnerBound:   "PartnerBound",
		StatusAccepted:       "Accepted",
		StatusDispatched:     "Dispatched",
		StatusDelivered:      "Delivered",
		StatusDeclined:       "Declined",
	}
}

// StatusFromString parses the stored string form of a status.
// Returns a ValueIsInvalidError for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusDeclined {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is a terminal state.
// Terminal orders reject every further state-mutating operation.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusDeclined
}

// AllowsAssignment reports whether a partner may be bound while the order is
// in this status. Binding is allowed in every pre-assignment state; it is not
// allowed once a partner accepted or the order reached a terminal state.
func (s Status) AllowsAssignment() bool {
	switch s {
	case StatusCreated, StatusPreparing, StatusPrepared, StatusSeekingPartner:
		return true
	default:
		return false
	}
}

// StartPreparation transitions the status to Preparing.
//
// Valid transitions:
//   - Created -> Preparing
func (s Status) StartPreparation() (Status, error) {
	if s != StatusCreated {
		return 0, errs.NewInvalidStateError("start preparation", s.String())
	}
	return StatusPreparing, nil
}

// MarkPrepared transitions the status to Prepared.
//
// Valid transitions:
//   - Preparing -> Prepared
func (s Status) MarkPrepared() (Status, error) {
	if s != StatusPreparing {
		return 0, errs.NewInvalidStateError("mark prepared", s.String())
	}
	return StatusPrepared, nil
}

// SeekPartner transitions the status to SeekingPartner.
// Used when the kitchen releases a prepared order for dispatch, and when a
// bound partner rejects the order and the binding is cleared.
//
// Valid transitions:
//   - Prepared -> SeekingPartner (released for dispatch)
//   - PartnerBound -> SeekingPartner (partner rejected)
//   - Created/Preparing -> SeekingPartner (partner bound early, then rejected)
func (s Status) SeekPartner() (Status, error) {
	if s.IsTerminal() || s == StatusAccepted || s == StatusDispatched || s == StatusSeekingPartner {
		return 0, errs.NewInvalidStateError("seek partner", s.String())
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return StatusSeekingPartner, nil
}

// Accept transitions the status to Accepted.
// The caller is responsible for verifying that a partner binding is present;
// this method only validates the lifecycle position.
//
// Valid transitions:
//   - PartnerBound -> Accepted
//   - Created/Preparing/Prepared -> Accepted (partner bound before the order
//     entered the seeking stage; binding preserves status)
func (s Status) Accept() (Status, error) {
	switch s {
	case StatusCreated, StatusPreparing, StatusPrepared, StatusPartnerBound:
		return StatusAccepted, nil
	default:
		return 0, errs.NewInvalidStateError("accept order", s.String())
	}
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - Accepted -> Dispatched
func (s Status) Dispatch() (Status, error) {
	if s != StatusAccepted {
		return 0, errs.NewInvalidStateError("mark dispatched", s.String())
	}
	return StatusDispatched, nil
}

// Deliver transitions the status to Delivered, a terminal state.
//
// Valid transitions:
//   - Accepted -> Delivered
//   - Dispatched -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != StatusAccepted && s != StatusDispatched {
		return 0, errs.NewInvalidStateError("mark delivered", s.String())
	}
	return StatusDelivered, nil
}

// Decline transitions the status to Declined, a terminal state.
// Declining is allowed from every valid non-terminal state.
func (s Status) Decline() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError("decline order", s.String())
	}
	return StatusDeclined, nil
}
