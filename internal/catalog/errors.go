package catalog

import "errors"

// Custom catalog service errors
var (
	// ErrSongNotFound indicates the song id does not resolve to a catalog entry
	ErrSongNotFound = errors.New("song not found")
)
