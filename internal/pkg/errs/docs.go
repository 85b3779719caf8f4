// Package errs provides standardized error types for the waste pickup coordination service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two families of errors:
//   - Construction/validation failures of value objects and commands
//     (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError)
//   - The order-coordination taxonomy surfaced over HTTP
//     (ObjectNotFoundError, PermissionDeniedError, InvalidTransitionError,
//     ResourceConflictError)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrPermissionDenied)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// The request layer maps sentinels to status codes: ErrObjectNotFound to 404,
// ErrPermissionDenied to 403, everything else in the taxonomy to 400. Guard and
// validation failures are local and never retried.
package errs
