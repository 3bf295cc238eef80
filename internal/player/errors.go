package player

import "errors"

// Error taxonomy for API operations. Handlers classify every failure into
// exactly one of these so callers can decide whether to retry: transport
// failures are retryable, everything else is not.
var (
	// ErrUnauthenticated indicates a missing or invalid credential on a
	// protected call
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound indicates the entity id does not resolve or does not
	// belong to the caller
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate name or already-present relation
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates a malformed input payload
	ErrValidation = errors.New("validation error")

	// ErrTransport indicates a network or serialization failure below the
	// application layer
	ErrTransport = errors.New("transport failure")
)
