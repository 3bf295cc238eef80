package models

import (
	"time"
)

// Like records that a user likes a song. One row per (song, user) pair;
// a song's like count is the number of rows, and the per-viewer liked
// flag is row existence.
type Like struct {
	SongID    string    `json:"songId" gorm:"type:text;primaryKey;column:song_id"`
	UserID    string    `json:"userId" gorm:"type:text;primaryKey;column:user_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}
