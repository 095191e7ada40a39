package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies the kind of caller performing an operation. The role is
// derived by an upstream authentication layer and passed into the core; the
// core only uses it for authorization decisions.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAdmin is the dashboard operator. Admins may read any order's
	// position and drive administrative transitions (decline, prepared).
	RoleAdmin

	// RoleDelivery is a delivery partner using the field app. Delivery
	// callers may mutate only orders they are bound to.
	RoleDelivery

	// RoleCustomer is the ordering customer. Customers may read the
	// position of orders they own, nothing else.
	RoleCustomer
)

// getRoleStrings returns a map of Role values to their wire representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleAdmin:    "admin",
		RoleDelivery: "delivery",
		RoleCustomer: "customer",
	}
}

// RoleFromString parses a wire role value ("admin", "delivery", "customer").
// Returns a ValueIsInvalidError for anything else.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// RoleUnknown (0) and any other values are invalid.
func (r Role) Validate() error {
	if r != RoleAdmin && r != RoleDelivery && r != RoleCustomer {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
