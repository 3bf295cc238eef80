package db

import (
	"context"
	"fmt"

	"github.com/statik-fm/rhythm/internal/models"
	"gorm.io/gorm"
)

// PlaylistRepository handles database operations for playlists and their entries
type PlaylistRepository struct {
	db *DB
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(db *DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist into the database
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	result := r.db.WithContext(ctx).Create(playlist)
	if result.Error != nil {
		return fmt.Errorf("failed to create playlist: %w", MapGormError(result.Error))
	}
	return nil
}

// GetOwned retrieves a playlist by id when it belongs to the given user.
// Returns ErrNotFound otherwise; ownership failures are indistinguishable
// from missing playlists by design.
func (r *PlaylistRepository) GetOwned(ctx context.Context, id int, userID string) (*models.Playlist, error) {
	var playlist models.Playlist
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&playlist)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &playlist, nil
}

// GetByNameAndOwner retrieves a playlist by exact name match for a user
func (r *PlaylistRepository) GetByNameAndOwner(ctx context.Context, name, userID string) (*models.Playlist, error) {
	var playlist models.Playlist
	result := r.db.WithContext(ctx).
		Where("name = ? AND user_id = ?", name, userID).
		First(&playlist)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &playlist, nil
}

// ListByOwner retrieves all playlists owned by the user, newest first,
// with entries ordered by position and their songs preloaded
func (r *PlaylistRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Playlist, error) {
	var playlists []*models.Playlist
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Entries", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Preload("Entries.Song").
		Order("created_at DESC, id DESC").
		Find(&playlists)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", MapGormError(result.Error))
	}
	return playlists, nil
}

// Delete removes a playlist owned by the user along with its entries.
// Returns ErrNotFound when no owned playlist matches.
func (r *PlaylistRepository) Delete(ctx context.Context, id int, userID string) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Playlist{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete playlist: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete playlist entries: %w", MapGormError(err))
		}
		return nil
	})
}

// GetEntries retrieves a playlist's entries ordered by position with songs preloaded
func (r *PlaylistRepository) GetEntries(ctx context.Context, playlistID int) ([]*models.PlaylistEntry, error) {
	var entries []*models.PlaylistEntry
	result := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID).
		Preload("Song").
		Order("position ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get playlist entries: %w", MapGormError(result.Error))
	}
	return entries, nil
}

// EntryExists reports whether the song is already in the playlist
func (r *PlaylistRepository) EntryExists(ctx context.Context, playlistID int, songID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.PlaylistEntry{}).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check playlist entry: %w", MapGormError(result.Error))
	}
	return count > 0, nil
}

// AppendEntry creates an entry at the end of the playlist: position is
// max(position)+1, or 0 when the playlist is empty. Runs in a transaction
// so concurrent appends cannot assign the same position.
func (r *PlaylistRepository) AppendEntry(ctx context.Context, playlistID int, songID string) (*models.PlaylistEntry, error) {
	var entry *models.PlaylistEntry
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		var maxPos *int
		if err := tx.Model(&models.PlaylistEntry{}).
			Where("playlist_id = ?", playlistID).
			Select("MAX(position)").
			Scan(&maxPos).Error; err != nil {
			return fmt.Errorf("failed to find max position: %w", MapGormError(err))
		}

		position := 0
		if maxPos != nil {
			position = *maxPos + 1
		}

		entry = models.NewPlaylistEntry(playlistID, songID, position)
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create playlist entry: %w", MapGormError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveEntry deletes the entry and renumbers the remaining entries of
// the playlist to a dense zero-based sequence, preserving relative order.
// Returns ErrNotFound when the song is not in the playlist.
func (r *PlaylistRepository) RemoveEntry(ctx context.Context, playlistID int, songID string) error {
	return r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("playlist_id = ? AND song_id = ?", playlistID, songID).
			Delete(&models.PlaylistEntry{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete playlist entry: %w", MapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		var remaining []*models.PlaylistEntry
		if err := tx.Where("playlist_id = ?", playlistID).
			Order("position ASC").
			Find(&remaining).Error; err != nil {
			return fmt.Errorf("failed to load remaining entries: %w", MapGormError(err))
		}

		for index, e := range remaining {
			if e.Position == index {
				continue
			}
			if err := tx.Model(&models.PlaylistEntry{}).
				Where("playlist_id = ? AND song_id = ?", playlistID, e.SongID).
				Update("position", index).Error; err != nil {
				return fmt.Errorf("failed to renumber entry %s: %w", e.SongID, MapGormError(err))
			}
		}
		return nil
	})
}
