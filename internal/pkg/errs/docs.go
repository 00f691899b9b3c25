// Package errs provides standardized error types for the parcel delivery application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package groups its error types by the kind of failure they report:
//   - ObjectNotFoundError: a referenced entity does not resolve (NotFound)
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed
//     business input (BadRequest)
//   - ForbiddenError: the actor's role does not permit the action (Forbidden)
//   - UnauthorizedError: the actor is not the owner/sender/rider a self-scoped
//     action requires (Unauthorized)
//   - ConflictError: a precondition on the persisted state no longer holds (Conflict)
//   - DuplicateKeyError: a unique constraint was violated (DuplicateKey)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the kind
//
// Adapters classify errors with errors.Is against the sentinels; they never
// inspect messages.
package errs
