// Package errs provides standardized error types for the manufacturing
// workflow engine. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid (illegal status
//     transitions surface through this type)
//   - ObjectNotFoundError: for when an object cannot be found; a tenant
//     mismatch is reported through this same type so that cross-tenant
//     existence is never leaked
//   - ObjectAlreadyExistsError: for when a natural key is already taken by a
//     materially different row (a true business conflict, as opposed to the
//     benign duplicate-create races absorbed by the idempotency helper)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach enables error classification with errors.Is
// across layer boundaries: repositories return ObjectNotFoundError, command
// handlers translate domain rule violations into ValueIsInvalidError, and the
// HTTP adapter maps the sentinels onto status codes.
package errs
