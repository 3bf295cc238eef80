package db

// Repositories provides access to all database repositories
type Repositories struct {
	Songs     *SongRepository
	Likes     *LikeRepository
	Playlists *PlaylistRepository
	Artists   *ArtistRepository
}

// NewRepositories creates a new repository collection
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Songs:     NewSongRepository(db),
		Likes:     NewLikeRepository(db),
		Playlists: NewPlaylistRepository(db),
		Artists:   NewArtistRepository(db),
	}
}
