// Package artist implements artist profiles and their verification
// workflow: a profile is submitted as PENDING and later reviewed to
// APPROVED or REJECTED.
package artist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/statik-fm/rhythm/internal/db"
	"github.com/statik-fm/rhythm/internal/logger"
	"github.com/statik-fm/rhythm/internal/models"
)

// Service handles business logic for artist profile operations
type Service struct {
	repos *db.Repositories
}

// NewService creates a new artist service instance
func NewService(repos *db.Repositories) *Service {
	return &Service{repos: repos}
}

// Submit creates a pending artist profile for the user
func (s *Service) Submit(ctx context.Context, userID, name string, coverImage, artisticVision, verificationDoc *string, genreTags string) (*models.ArtistProfile, error) {
	if _, err := s.repos.Artists.GetByUserID(ctx, userID); err == nil {
		logger.Log.Warn().
			Str("user_id", userID).
			Msg("Profile submission failed: profile exists")
		return nil, ErrProfileExists
	} else if !db.IsNotFound(err) {
		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to check existing profile")
		return nil, fmt.Errorf("failed to submit artist profile: %w", err)
	}

	profile := models.NewArtistProfile(userID, name)
	profile.CoverImage = coverImage
	profile.ArtisticVision = artisticVision
	profile.VerificationDoc = verificationDoc
	profile.GenreTags = genreTags

	if err := s.repos.Artists.Create(ctx, profile); err != nil {
		if db.IsDuplicate(err) {
			return nil, ErrProfileExists
		}
		logger.Log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to create artist profile")
		return nil, fmt.Errorf("failed to submit artist profile: %w", err)
	}

	logger.Log.Info().
		Str("profile_id", profile.ID.String()).
		Str("user_id", userID).
		Msg("Artist profile submitted")

	return profile, nil
}

// Get retrieves an artist profile by its id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ArtistProfile, error) {
	profile, err := s.repos.Artists.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrProfileNotFound
		}
		logger.Log.Error().
			Err(err).
			Str("profile_id", id.String()).
			Msg("Failed to get artist profile")
		return nil, fmt.Errorf("failed to get artist profile: %w", err)
	}
	return profile, nil
}

// Review resolves a profile's verification: APPROVED marks the artist
// verified, REJECTED leaves it unverified. Any other status is invalid.
func (s *Service) Review(ctx context.Context, id uuid.UUID, status string) (*models.ArtistProfile, error) {
	if !models.ValidVerificationStatus(status) {
		return nil, ErrInvalidStatus
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.VerificationStatus = status
	profile.IsVerified = status == models.VerificationApproved
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repos.Artists.Update(ctx, profile); err != nil {
		logger.Log.Error().
			Err(err).
			Str("profile_id", id.String()).
			Str("status", status).
			Msg("Failed to update verification status")
		return nil, fmt.Errorf("failed to review artist profile: %w", err)
	}

	logger.Log.Info().
		Str("profile_id", id.String()).
		Str("status", status).
		Bool("verified", profile.IsVerified).
		Msg("Artist profile reviewed")

	return profile, nil
}
