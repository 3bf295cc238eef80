package models

import (
	"time"
)

// Playlist is an ordered collection of songs owned by exactly one user.
// Name is unique per owner (exact, case-sensitive match).
type Playlist struct {
	ID          int             `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	UserID      string          `json:"userId" gorm:"type:text;not null;index;column:user_id" validate:"required"`
	Name        string          `json:"name" gorm:"type:text;not null;column:name" validate:"required,min=1,max=255"`
	Description *string         `json:"description,omitempty" gorm:"type:text;column:description"`
	IsPublic    bool            `json:"isPublic" gorm:"type:integer;not null;default:1;column:is_public"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	Entries     []PlaylistEntry `json:"songs" gorm:"foreignKey:PlaylistID"`
}

// PlaylistEntry links a song into a playlist at a position. The
// (playlist_id, song_id) pair is unique and positions form a dense
// zero-based sequence within a playlist.
type PlaylistEntry struct {
	PlaylistID int       `json:"playlistId" gorm:"primaryKey;column:playlist_id"`
	SongID     string    `json:"songId" gorm:"type:text;primaryKey;column:song_id"`
	Position   int       `json:"order" gorm:"type:integer;not null;column:position" validate:"gte=0"`
	AddedAt    time.Time `json:"addedAt" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:added_at"`

	// Populated by joins, not stored in this table
	Song *Song `json:"song,omitempty" gorm:"foreignKey:SongID;references:ID"`
}

// NewPlaylist creates a playlist with an empty entry list.
func NewPlaylist(userID, name string, description *string, isPublic bool) *Playlist {
	return &Playlist{
		UserID:      userID,
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
		CreatedAt:   time.Now().UTC(),
		Entries:     []PlaylistEntry{},
	}
}

// NewPlaylistEntry creates an entry for a song at the given position.
func NewPlaylistEntry(playlistID int, songID string, position int) *PlaylistEntry {
	return &PlaylistEntry{
		PlaylistID: playlistID,
		SongID:     songID,
		Position:   position,
		AddedAt:    time.Now().UTC(),
	}
}
