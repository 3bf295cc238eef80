package artist

import "errors"

// Custom artist service errors
var (
	// ErrProfileNotFound indicates no artist profile matches the id
	ErrProfileNotFound = errors.New("artist profile not found")

	// ErrProfileExists indicates the user already has an artist profile
	ErrProfileExists = errors.New("artist profile already exists")

	// ErrInvalidStatus indicates an unrecognized review status
	ErrInvalidStatus = errors.New("invalid verification status")
)
