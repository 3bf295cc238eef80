package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/statik-fm/rhythm/internal/logger"
)

// Catalog is the session-local store of the full song list and its
// mutable engagement counters. It is populated by one Load per session
// and updated incrementally afterwards.
type Catalog struct {
	mu       sync.Mutex
	client   *Client
	songs    []Song
	loaded   bool
	onUpdate func(Song)
}

// NewCatalog creates an empty catalog backed by the API client
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// OnUpdate registers a callback invoked with the new song data whenever
// an entry is replaced in place. The playback controller uses this to
// keep the active song's engagement counts fresh. The callback runs
// without the catalog lock held.
func (c *Catalog) OnUpdate(fn func(Song)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// Load fetches the full song list. On failure the store stays empty and
// the error is returned for the caller to surface; the session remains
// usable.
func (c *Catalog) Load(ctx context.Context) error {
	songs, err := c.client.ListSongs(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to load song catalog")
		return fmt.Errorf("failed to load songs: %w", err)
	}

	c.mu.Lock()
	c.songs = songs
	c.loaded = true
	c.mu.Unlock()

	logger.Log.Debug().
		Int("count", len(songs)).
		Msg("Song catalog loaded")

	return nil
}

// Loaded reports whether a Load has succeeded this session
func (c *Catalog) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Songs returns a copy of the catalog in its stable order
func (c *Catalog) Songs() []Song {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Song, len(c.songs))
	copy(out, c.songs)
	return out
}

// Get returns the catalog entry with the given id
func (c *Catalog) Get(songID string) (Song, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.songs {
		if s.ID == songID {
			return s, true
		}
	}
	return Song{}, false
}

// ApplyPlayIncrement replaces one entry's play count with the
// authoritative server value, preserving every other field. Unknown ids
// are a silent no-op: the catalog may have changed concurrently.
func (c *Catalog) ApplyPlayIncrement(songID string, plays int64) {
	c.update(songID, func(s *Song) {
		s.Plays = plays
	})
}

// ApplyLikeUpdate replaces one entry's liked flag and like count with
// the authoritative server values. Unknown ids are a silent no-op.
func (c *Catalog) ApplyLikeUpdate(songID string, liked bool, likes int64) {
	c.update(songID, func(s *Song) {
		s.Liked = liked
		s.Likes = likes
	})
}

// update applies a targeted in-place mutation and fires the update hook
func (c *Catalog) update(songID string, mutate func(*Song)) {
	c.mu.Lock()
	var updated *Song
	for i := range c.songs {
		if c.songs[i].ID == songID {
			mutate(&c.songs[i])
			copied := c.songs[i]
			updated = &copied
			break
		}
	}
	hook := c.onUpdate
	c.mu.Unlock()

	if updated != nil && hook != nil {
		hook(*updated)
	}
}
