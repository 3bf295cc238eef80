package playlist

import "errors"

// Custom playlist service errors
var (
	// ErrPlaylistNotFound indicates the playlist does not exist or does not
	// belong to the caller
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrSongNotFound indicates the song id does not resolve to a catalog entry
	ErrSongNotFound = errors.New("song not found")

	// ErrDuplicateName indicates the owner already has a playlist with this
	// exact name
	ErrDuplicateName = errors.New("playlist name already exists")

	// ErrSongAlreadyPresent indicates the song is already in the playlist
	ErrSongAlreadyPresent = errors.New("song already in playlist")

	// ErrSongNotPresent indicates the song is not in the playlist
	ErrSongNotPresent = errors.New("song not in playlist")

	// ErrEmptyName indicates a playlist name was missing
	ErrEmptyName = errors.New("playlist name is required")
)
