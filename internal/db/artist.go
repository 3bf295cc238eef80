package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/statik-fm/rhythm/internal/models"
)

// ArtistRepository handles database operations for artist profiles
type ArtistRepository struct {
	db *DB
}

// NewArtistRepository creates a new artist repository
func NewArtistRepository(db *DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts a new artist profile into the database
func (r *ArtistRepository) Create(ctx context.Context, profile *models.ArtistProfile) error {
	result := r.db.WithContext(ctx).Create(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to create artist profile: %w", MapGormError(result.Error))
	}
	return nil
}

// GetByID retrieves an artist profile by its UUID
func (r *ArtistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ArtistProfile, error) {
	var profile models.ArtistProfile
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&profile)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &profile, nil
}

// GetByUserID retrieves an artist profile by its owning user id
func (r *ArtistRepository) GetByUserID(ctx context.Context, userID string) (*models.ArtistProfile, error) {
	var profile models.ArtistProfile
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		return nil, MapGormError(result.Error)
	}
	return &profile, nil
}

// Update saves changes to an existing artist profile
func (r *ArtistRepository) Update(ctx context.Context, profile *models.ArtistProfile) error {
	result := r.db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to update artist profile: %w", MapGormError(result.Error))
	}
	return nil
}
