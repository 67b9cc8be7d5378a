// Package errs provides the error taxonomy of the order service.
//
// Every kind follows the same shape: a sentinel (ErrObjectNotFound,
// ErrConflict, ...), a struct carrying the details, constructors with and
// without a cause, and an Unwrap method returning the sentinel so callers can
// classify with errors.Is and inspect with errors.As.
//
// Kinds reported to callers of the order use cases:
//   - ErrInvalidInput: malformed creation payload, rejected before any I/O.
//     ErrValueIsInvalid, ErrValueIsRequired and ErrValueIsOutOfRange all unwrap to it.
//   - ErrObjectNotFound: unknown or malformed identifier.
//   - ErrInvalidTransition: requested status not reachable from the current one.
//   - ErrConflict: the expected version no longer matches the stored one.
//   - ErrStoreUnavailable: the backing store failed or timed out.
//
// ErrVersionMismatch is internal to the repository contract: the conditional
// write reports it and the status use case converts it into a ConflictError.
package errs
