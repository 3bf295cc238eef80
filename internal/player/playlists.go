package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/statik-fm/rhythm/internal/logger"
)

// Playlists is the session-local store of the user's playlists. Every
// mutation is confirm-then-apply: local state changes only after the
// server has accepted the operation, so a failed call never leaves the
// collection inconsistent.
type Playlists struct {
	mu     sync.Mutex
	client *Client
	lists  []Playlist
}

// NewPlaylists creates an empty playlist store backed by the API client
func NewPlaylists(client *Client) *Playlists {
	return &Playlists{client: client}
}

// Load fetches the caller's playlists. Unauthenticated sessions get an
// empty set, not an error.
func (p *Playlists) Load(ctx context.Context) error {
	if !p.client.Authenticated() {
		p.mu.Lock()
		p.lists = nil
		p.mu.Unlock()
		return nil
	}

	lists, err := p.client.ListPlaylists(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to load playlists")
		return fmt.Errorf("failed to load playlists: %w", err)
	}

	p.mu.Lock()
	p.lists = lists
	p.mu.Unlock()

	logger.Log.Debug().
		Int("count", len(lists)).
		Msg("Playlists loaded")

	return nil
}

// All returns a copy of the playlists, newest first
func (p *Playlists) All() []Playlist {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Playlist, len(p.lists))
	copy(out, p.lists)
	return out
}

// Get returns the playlist with the given id
func (p *Playlists) Get(playlistID int) (Playlist, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, pl := range p.lists {
		if pl.ID == playlistID {
			return pl, true
		}
	}
	return Playlist{}, false
}

// Create creates a playlist on the server and, once confirmed, prepends
// it to the collection (most-recent-first ordering).
func (p *Playlists) Create(ctx context.Context, name string, description *string, isPublic bool) (*Playlist, error) {
	created, err := p.client.CreatePlaylist(ctx, name, description, isPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	if created.Songs == nil {
		created.Songs = []PlaylistEntry{}
	}

	p.mu.Lock()
	p.lists = append([]Playlist{*created}, p.lists...)
	p.mu.Unlock()

	logger.Log.Info().
		Int("playlist_id", created.ID).
		Str("name", created.Name).
		Msg("Playlist created")

	return created, nil
}

// Delete deletes a playlist on the server and, once confirmed, removes
// it from the collection.
func (p *Playlists) Delete(ctx context.Context, playlistID int) error {
	if err := p.client.DeletePlaylist(ctx, playlistID); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	p.mu.Lock()
	for i, pl := range p.lists {
		if pl.ID == playlistID {
			p.lists = append(p.lists[:i], p.lists[i+1:]...)
			break
		}
	}
	p.mu.Unlock()

	logger.Log.Info().
		Int("playlist_id", playlistID).
		Msg("Playlist deleted")

	return nil
}

// AddSong appends a song to a playlist on the server and, once
// confirmed, appends the returned entry to the local playlist.
func (p *Playlists) AddSong(ctx context.Context, playlistID int, songID string) (*PlaylistEntry, error) {
	entry, err := p.client.AddPlaylistSong(ctx, playlistID, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to add song to playlist: %w", err)
	}

	p.mu.Lock()
	for i := range p.lists {
		if p.lists[i].ID == playlistID {
			p.lists[i].Songs = append(p.lists[i].Songs, *entry)
			break
		}
	}
	p.mu.Unlock()

	logger.Log.Info().
		Int("playlist_id", playlistID).
		Str("song_id", songID).
		Int("order", entry.Order).
		Msg("Song added to playlist")

	return entry, nil
}

// RemoveSong removes a song from a playlist on the server and, once
// confirmed, drops the entry locally and renumbers the remaining
// entries to a dense zero-based sequence, mirroring the server.
func (p *Playlists) RemoveSong(ctx context.Context, playlistID int, songID string) error {
	if err := p.client.RemovePlaylistSong(ctx, playlistID, songID); err != nil {
		return fmt.Errorf("failed to remove song from playlist: %w", err)
	}

	p.mu.Lock()
	for i := range p.lists {
		if p.lists[i].ID != playlistID {
			continue
		}
		entries := p.lists[i].Songs
		kept := entries[:0]
		for _, e := range entries {
			if e.SongID != songID {
				kept = append(kept, e)
			}
		}
		for j := range kept {
			kept[j].Order = j
		}
		p.lists[i].Songs = kept
		break
	}
	p.mu.Unlock()

	logger.Log.Info().
		Int("playlist_id", playlistID).
		Str("song_id", songID).
		Msg("Song removed from playlist")

	return nil
}
