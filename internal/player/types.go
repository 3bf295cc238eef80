// Package player implements the client-side playback core: the song
// catalog and playlist stores, the queue engine deciding what plays
// next, the playback controller orchestrating transitions, and the
// engagement sync reconciling play/like counters with the server.
package player

import (
	"time"
)

// Song is a catalog track as served by the songs API, including the
// viewer's engagement data.
type Song struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Duration   int       `json:"duration"` // seconds
	Cover      string    `json:"cover"`
	Audio      string    `json:"audio"`
	CoverVideo *string   `json:"coverVideo,omitempty"`
	Genre      *string   `json:"genre,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Plays      int64     `json:"plays"`
	Liked      bool      `json:"liked"`
	Likes      int64     `json:"likes"`
}

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

// PlaylistEntry is one song's membership in a playlist. Order values form
// a dense zero-based sequence within a playlist.
type PlaylistEntry struct {
	PlaylistID int       `json:"playlistId"`
	SongID     string    `json:"songId"`
	Order      int       `json:"order"`
	AddedAt    time.Time `json:"addedAt"`
	Song       *Song     `json:"song,omitempty"`
}

// Playlist is an ordered collection of songs owned by the session user.
type Playlist struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	IsPublic    bool            `json:"isPublic"`
	CreatedAt   time.Time       `json:"createdAt"`
	Songs       []PlaylistEntry `json:"songs"`
}
