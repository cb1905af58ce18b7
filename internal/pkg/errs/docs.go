// Package errs provides standardized error types for the ordering service.
//
// Two groups of errors live here:
//   - validation errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     VersionIsInvalidError) raised by constructors and value objects
//   - the domain taxonomy used by the order lifecycle: ObjectNotFoundError (resource not found),
//     InvalidOperationError, InvalidStateTransitionError and AccessDeniedError
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired) returned by Unwrap
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//
// Callers classify errors with errors.Is against the sentinels, so adapters (HTTP, jobs)
// never need to know the concrete types.
package errs
