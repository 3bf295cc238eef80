// Package catalog implements the song catalog: listing with per-viewer
// engagement data and the play/like counter mutations.
package catalog

import (
	"context"
	"fmt"

	"github.com/statik-fm/rhythm/internal/db"
	"github.com/statik-fm/rhythm/internal/logger"
	"github.com/statik-fm/rhythm/internal/models"
)

// SongView is a catalog song decorated with engagement data for one
// viewer. Liked is always false for unauthenticated viewers.
type SongView struct {
	models.Song
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// Service handles business logic for catalog operations
type Service struct {
	repos *db.Repositories
}

// NewService creates a new catalog service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{repos: repos}
}

// ListSongs returns the full catalog with like counts and, when viewerID
// is non-empty, the viewer's liked flags.
func (s *Service) ListSongs(ctx context.Context, viewerID string) ([]*SongView, error) {
	songs, err := s.repos.Songs.List(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to list songs")
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	counts, err := s.repos.Likes.CountsBySong(ctx)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to load like counts")
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	likedSet := map[string]struct{}{}
	if viewerID != "" {
		likedSet, err = s.repos.Likes.SongIDsLikedByUser(ctx, viewerID)
		if err != nil {
			logger.Log.Error().
				Err(err).
				Str("viewer_id", viewerID).
				Msg("Failed to load viewer likes")
			return nil, fmt.Errorf("failed to list songs: %w", err)
		}
	}

	views := make([]*SongView, 0, len(songs))
	for _, song := range songs {
		_, liked := likedSet[song.ID]
		views = append(views, &SongView{
			Song:  *song,
			Liked: liked,
			Likes: counts[song.ID],
		})
	}

	logger.Log.Debug().
		Int("count", len(views)).
		Bool("authenticated", viewerID != "").
		Msg("Listed songs")

	return views, nil
}

// RegisterPlay increments a song's play counter and returns the new count
func (s *Service) RegisterPlay(ctx context.Context, songID string) (int64, error) {
	plays, err := s.repos.Songs.IncrementPlays(ctx, songID)
	if err != nil {
		if db.IsNotFound(err) {
			logger.Log.Warn().
				Str("song_id", songID).
				Msg("Play registration failed: song not found")
			return 0, ErrSongNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("song_id", songID).
			Msg("Failed to register play")
		return 0, fmt.Errorf("failed to register play: %w", err)
	}

	logger.Log.Debug().
		Str("song_id", songID).
		Int64("plays", plays).
		Msg("Play registered")

	return plays, nil
}

// SetLike records or removes the user's like for a song and returns the
// resulting liked flag and like count. Applying an already-current state
// is a no-op, so the operation is safe to repeat.
func (s *Service) SetLike(ctx context.Context, songID, userID string, liked bool) (bool, int64, error) {
	if _, err := s.repos.Songs.GetByID(ctx, songID); err != nil {
		if db.IsNotFound(err) {
			logger.Log.Warn().
				Str("song_id", songID).
				Msg("Like update failed: song not found")
			return false, 0, ErrSongNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("song_id", songID).
			Msg("Failed to validate song existence")
		return false, 0, fmt.Errorf("failed to update like: %w", err)
	}

	if liked {
		if err := s.repos.Likes.Set(ctx, songID, userID); err != nil {
			logger.Log.Error().
				Err(err).
				Str("song_id", songID).
				Str("user_id", userID).
				Msg("Failed to set like")
			return false, 0, fmt.Errorf("failed to update like: %w", err)
		}
	} else {
		if err := s.repos.Likes.Unset(ctx, songID, userID); err != nil {
			logger.Log.Error().
				Err(err).
				Str("song_id", songID).
				Str("user_id", userID).
				Msg("Failed to unset like")
			return false, 0, fmt.Errorf("failed to update like: %w", err)
		}
	}

	count, err := s.repos.Likes.CountBySong(ctx, songID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("song_id", songID).
			Msg("Failed to count likes")
		return false, 0, fmt.Errorf("failed to update like: %w", err)
	}

	logger.Log.Info().
		Str("song_id", songID).
		Str("user_id", userID).
		Bool("liked", liked).
		Int64("likes", count).
		Msg("Like updated")

	return liked, count, nil
}
