// Package errs provides standardized error types for the fulfillment core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: a referenced order or partner does not exist
//   - ConflictError: a concurrent writer won the race, or a binding is already present
//   - InvalidStateError: the order's current status forbids the operation
//   - PermissionDeniedError: the caller fails the authorization check
//   - ValueIsInvalidError / ValueIsOutOfRangeError / ValueIsRequiredError: malformed input
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Business-invariant violations (conflict, invalid state, permission denied,
// invalid value) are always surfaced to the caller verbatim. Failures of
// secondary effects (partner counter increments, push notifications) are
// absorbed and logged by the callers; ErrNotificationNotDelivered exists only
// so that soft notification failures can be classified, it is never returned
// as an operation's error.
package errs
