package models

import (
	"time"
)

// MediaSourceKind discriminates the playable source variants of a song.
type MediaSourceKind int

const (
	// AudioOnly is a song with a plain audio source.
	AudioOnly MediaSourceKind = iota
	// AudioWithVideo is a song whose cover doubles as a looping video.
	AudioWithVideo
)

// MediaSource is the tagged variant of a song's playable references.
// Video is set only when Kind is AudioWithVideo.
type MediaSource struct {
	Kind  MediaSourceKind
	Audio string
	Video string
}

// Song represents a catalog track. Songs are ingested externally; the
// service mutates only their engagement counters.
type Song struct {
	ID         string    `json:"id" gorm:"type:text;primaryKey;column:id"`
	Title      string    `json:"title" gorm:"type:text;not null;column:title" validate:"required"`
	Artist     string    `json:"artist" gorm:"type:text;not null;column:artist" validate:"required"`
	Duration   int       `json:"duration" gorm:"type:integer;not null;column:duration" validate:"gte=0"` // seconds
	Cover      string    `json:"cover" gorm:"type:text;column:cover"`
	Audio      string    `json:"audio" gorm:"type:text;not null;column:audio" validate:"required"`
	CoverVideo *string   `json:"coverVideo,omitempty" gorm:"type:text;column:cover_video"`
	Genre      *string   `json:"genre,omitempty" gorm:"type:text;column:genre"`
	Plays      int64     `json:"plays" gorm:"type:integer;not null;default:0;column:plays" validate:"gte=0"`
	CreatedAt  time.Time `json:"createdAt" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt  time.Time `json:"-" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// Source returns the tagged media-source variant for the song.
func (s *Song) Source() MediaSource {
	if s.CoverVideo != nil && *s.CoverVideo != "" {
		return MediaSource{Kind: AudioWithVideo, Audio: s.Audio, Video: *s.CoverVideo}
	}
	return MediaSource{Kind: AudioOnly, Audio: s.Audio}
}

// GenreName returns the song's genre or the empty string when unset.
func (s *Song) GenreName() string {
	if s.Genre == nil {
		return ""
	}
	return *s.Genre
}
