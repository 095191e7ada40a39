// Package order provides domain entities and business logic for the
// order-assignment and live-tracking core. It implements the Order aggregate
// root with delivery lifecycle management, the at-most-one partner binding
// invariant, and assignment-gated position recording.
//
// The package includes:
//   - Order: the aggregate root managing identity, binding, position, and lifecycle
//   - Status: a state machine that enforces valid delivery-lifecycle transitions
//   - PartnerBinding: the immutable link between an order and its delivery partner
//   - Position: the last-known geographic position of an order in transit
//
// Key business rules:
//   - A partner binding is set by at most one successful assignment; once set
//     it is immutable until an explicit rejection returns the order to
//     SeekingPartner and clears the active binding
//   - Partners who rejected an order accumulate in an append-only set
//   - Only the bound partner may record positions; recording is last-write-wins
//   - Delivered and Declined are terminal: no mutation is accepted afterwards
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
