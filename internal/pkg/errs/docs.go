// Package errs provides the typed errors shared by the storefront order service.
//
// Every error type follows the same shape: a sentinel variable (for errors.Is),
// a struct carrying the details, a New... constructor and an Unwrap method
// returning the sentinel.
//
// The value, required and out-of-range errors together form the validation
// family (see IsValidation). InvalidTransitionError and ConcurrencyConflictError
// are raised by the order lifecycle and surface to callers unchanged.
package errs
