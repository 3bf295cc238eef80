// Package playlist implements user playlist management: creation with
// per-owner unique names, deletion, and ordered song membership with
// dense zero-based positions.
package playlist

import (
	"context"
	"fmt"

	"github.com/statik-fm/rhythm/internal/db"
	"github.com/statik-fm/rhythm/internal/logger"
	"github.com/statik-fm/rhythm/internal/models"
)

// Service handles business logic for playlist operations
type Service struct {
	repos *db.Repositories
}

// NewService creates a new playlist service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{repos: repos}
}

// List retrieves all playlists owned by the user, newest first, with
// entries ordered by position and songs embedded
func (s *Service) List(ctx context.Context, userID string) ([]*models.Playlist, error) {
	playlists, err := s.repos.Playlists.ListByOwner(ctx, userID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to list playlists")
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	logger.Log.Debug().
		Str("user_id", userID).
		Int("count", len(playlists)).
		Msg("Listed playlists")

	return playlists, nil
}

// Create creates a playlist for the user. The name must be unique among
// the owner's playlists; the match is exact and case-sensitive.
func (s *Service) Create(ctx context.Context, userID, name string, description *string, isPublic bool) (*models.Playlist, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	_, err := s.repos.Playlists.GetByNameAndOwner(ctx, name, userID)
	if err == nil {
		logger.Log.Warn().
			Str("user_id", userID).
			Str("name", name).
			Msg("Playlist creation failed: duplicate name")
		return nil, ErrDuplicateName
	}
	if !db.IsNotFound(err) {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to validate playlist name uniqueness")
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	playlist := models.NewPlaylist(userID, name, description, isPublic)
	if err := s.repos.Playlists.Create(ctx, playlist); err != nil {
		if db.IsDuplicate(err) {
			return nil, ErrDuplicateName
		}
		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Str("name", name).
			Msg("Failed to create playlist in database")
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	logger.Log.Info().
		Int("playlist_id", playlist.ID).
		Str("user_id", userID).
		Str("name", name).
		Msg("Playlist created")

	return playlist, nil
}

// Delete removes a playlist owned by the user
func (s *Service) Delete(ctx context.Context, playlistID int, userID string) error {
	if err := s.repos.Playlists.Delete(ctx, playlistID, userID); err != nil {
		if db.IsNotFound(err) {
			logger.Log.Warn().
				Int("playlist_id", playlistID).
				Str("user_id", userID).
				Msg("Playlist deletion failed: not found")
			return ErrPlaylistNotFound
		}
		logger.Log.Error().
			Err(err).
			Int("playlist_id", playlistID).
			Msg("Failed to delete playlist")
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	logger.Log.Info().
		Int("playlist_id", playlistID).
		Str("user_id", userID).
		Msg("Playlist deleted")

	return nil
}

// AddSong appends a song to the end of a playlist owned by the user.
// The new entry's position is max(position)+1, or 0 for an empty playlist.
func (s *Service) AddSong(ctx context.Context, playlistID int, songID, userID string) (*models.PlaylistEntry, error) {
	if _, err := s.repos.Playlists.GetOwned(ctx, playlistID, userID); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPlaylistNotFound
		}
		logger.Log.Error().
			Err(err).
			Int("playlist_id", playlistID).
			Msg("Failed to validate playlist ownership")
		return nil, fmt.Errorf("failed to add song to playlist: %w", err)
	}

	song, err := s.repos.Songs.GetByID(ctx, songID)
	if err != nil {
		if db.IsNotFound(err) {
			logger.Log.Warn().
				Str("song_id", songID).
				Msg("Add to playlist failed: song not found")
			return nil, ErrSongNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("song_id", songID).
			Msg("Failed to validate song existence")
		return nil, fmt.Errorf("failed to add song to playlist: %w", err)
	}

	exists, err := s.repos.Playlists.EntryExists(ctx, playlistID, songID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Int("playlist_id", playlistID).
			Str("song_id", songID).
			Msg("Failed to check playlist membership")
		return nil, fmt.Errorf("failed to add song to playlist: %w", err)
	}
	if exists {
		logger.Log.Warn().
			Int("playlist_id", playlistID).
			Str("song_id", songID).
			Msg("Add to playlist failed: song already present")
		return nil, ErrSongAlreadyPresent
	}

	entry, err := s.repos.Playlists.AppendEntry(ctx, playlistID, songID)
	if err != nil {
		if db.IsDuplicate(err) {
			return nil, ErrSongAlreadyPresent
		}
		logger.Log.Error().
			Err(err).
			Int("playlist_id", playlistID).
			Str("song_id", songID).
			Msg("Failed to append playlist entry")
		return nil, fmt.Errorf("failed to add song to playlist: %w", err)
	}
	entry.Song = song

	logger.Log.Info().
		Int("playlist_id", playlistID).
		Str("song_id", songID).
		Int("position", entry.Position).
		Msg("Song added to playlist")

	return entry, nil
}

// RemoveSong removes a song from a playlist owned by the user and
// renumbers the remaining entries to a dense zero-based sequence.
func (s *Service) RemoveSong(ctx context.Context, playlistID int, songID, userID string) error {
	if _, err := s.repos.Playlists.GetOwned(ctx, playlistID, userID); err != nil {
		if db.IsNotFound(err) {
			return ErrPlaylistNotFound
		}
		logger.Log.Error().
			Err(err).
			Int("playlist_id", playlistID).
			Msg("Failed to validate playlist ownership")
		return fmt.Errorf("failed to remove song from playlist: %w", err)
	}

	if err := s.repos.Playlists.RemoveEntry(ctx, playlistID, songID); err != nil {
		if db.IsNotFound(err) {
			logger.Log.Warn().
				Int("playlist_id", playlistID).
				Str("song_id", songID).
				Msg("Remove from playlist failed: song not present")
			return ErrSongNotPresent
		}
		logger.Log.Error().
			Err(err).
			Int("playlist_id", playlistID).
			Str("song_id", songID).
			Msg("Failed to remove playlist entry")
		return fmt.Errorf("failed to remove song from playlist: %w", err)
	}

	logger.Log.Info().
		Int("playlist_id", playlistID).
		Str("song_id", songID).
		Msg("Song removed from playlist")

	return nil
}
