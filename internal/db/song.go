package db

import (
	"context"
	"fmt"

	"github.com/statik-fm/rhythm/internal/models"
	"gorm.io/gorm"
)

// SongRepository handles database operations for songs
type SongRepository struct {
	db *DB
}

// NewSongRepository creates a new song repository
func NewSongRepository(db *DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song into the database
func (r *SongRepository) Create(ctx context.Context, song *models.Song) error {
	result := r.db.WithContext(ctx).Create(song)
	if result.Error != nil {
		return fmt.Errorf("failed to create song: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves a song by its ID
func (r *SongRepository) GetByID(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&song)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &song, nil
}

// List retrieves all songs ordered by creation time, newest first
func (r *SongRepository) List(ctx context.Context) ([]*models.Song, error) {
	var songs []*models.Song
	result := r.db.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Find(&songs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list songs: %w", MapGormError(result.Error))
	}
	return songs, nil
}

// IncrementPlays atomically increments a song's play counter and returns
// the new count. Returns ErrNotFound when the song id is unknown.
func (r *SongRepository) IncrementPlays(ctx context.Context, id string) (int64, error) {
	var plays int64
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Song{}).
			Where("id = ?", id).
			Update("plays", gorm.Expr("plays + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to increment plays: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		var song models.Song
		if err := tx.Select("plays").Where("id = ?", id).First(&song).Error; err != nil {
			return MapGormError(err)
		}
		plays = song.Plays
		return nil
	})
	if err != nil {
		return 0, err
	}
	return plays, nil
}

// LikeRepository handles database operations for song likes
type LikeRepository struct {
	db *DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Set records that the user likes the song. Setting an existing like is a
// no-op, which keeps repeated identical toggles safe.
func (r *LikeRepository) Set(ctx context.Context, songID, userID string) error {
	var existing models.Like
	err := r.db.WithContext(ctx).
		Where("song_id = ? AND user_id = ?", songID, userID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !IsNotFound(MapGormError(err)) {
		return fmt.Errorf("failed to check like: %w", MapGormError(err))
	}

	like := &models.Like{SongID: songID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		mapped := MapGormError(err)
		if IsDuplicate(mapped) {
			return nil
		}
		return fmt.Errorf("failed to create like: %w", mapped)
	}
	return nil
}

// Unset removes the user's like for the song. Removing an absent like is
// a no-op.
func (r *LikeRepository) Unset(ctx context.Context, songID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("song_id = ? AND user_id = ?", songID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete like: %w", MapGormError(result.Error))
	}
	return nil
}

// CountBySong returns the number of likes for a song
func (r *LikeRepository) CountBySong(ctx context.Context, songID string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("song_id = ?", songID).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count likes: %w", MapGormError(result.Error))
	}
	return count, nil
}

// LikedByUser reports whether the user has liked the song
func (r *LikeRepository) LikedByUser(ctx context.Context, songID, userID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("song_id = ? AND user_id = ?", songID, userID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check like: %w", MapGormError(result.Error))
	}
	return count > 0, nil
}

// CountsBySong returns like counts keyed by song id for the whole catalog
func (r *LikeRepository) CountsBySong(ctx context.Context) (map[string]int64, error) {
	type row struct {
		SongID string
		Count  int64
	}
	var rows []row
	result := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("song_id, COUNT(*) as count").
		Group("song_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to count likes by song: %w", MapGormError(result.Error))
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.SongID] = r.Count
	}
	return counts, nil
}

// SongIDsLikedByUser returns the set of song ids the user has liked
func (r *LikeRepository) SongIDsLikedByUser(ctx context.Context, userID string) (map[string]struct{}, error) {
	var ids []string
	result := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("song_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list liked songs: %w", MapGormError(result.Error))
	}

	liked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		liked[id] = struct{}{}
	}
	return liked, nil
}
