package models

import (
	"time"

	"github.com/google/uuid"
)

// Verification statuses for an artist profile.
const (
	VerificationPending  = "PENDING"
	VerificationApproved = "APPROVED"
	VerificationRejected = "REJECTED"
)

// ArtistProfile holds an artist's public profile and the state of its
// verification workflow. One profile per user.
type ArtistProfile struct {
	ID                 uuid.UUID `json:"id" gorm:"type:text;primaryKey;column:id"`
	UserID             string    `json:"userId" gorm:"type:text;not null;uniqueIndex;column:user_id" validate:"required"`
	Name               string    `json:"name" gorm:"type:text;not null;column:name" validate:"required"`
	CoverImage         *string   `json:"coverImage,omitempty" gorm:"type:text;column:cover_image"`
	GenreTags          string    `json:"genreTags" gorm:"type:text;column:genre_tags"` // comma-separated
	ArtisticVision     *string   `json:"artisticVision,omitempty" gorm:"type:text;column:artistic_vision"`
	VerificationDoc    *string   `json:"verificationDoc,omitempty" gorm:"type:text;column:verification_doc"`
	VerificationStatus string    `json:"verificationStatus" gorm:"type:text;not null;default:PENDING;column:verification_status"`
	IsVerified         bool      `json:"isVerified" gorm:"type:integer;not null;default:0;column:is_verified"`
	CreatedAt          time.Time `json:"createdAt" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
	UpdatedAt          time.Time `json:"updatedAt" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:updated_at"`
}

// NewArtistProfile creates a pending profile with a generated UUID.
func NewArtistProfile(userID, name string) *ArtistProfile {
	now := time.Now().UTC()
	return &ArtistProfile{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               name,
		VerificationStatus: VerificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// ValidVerificationStatus reports whether s is a recognized review status.
func ValidVerificationStatus(s string) bool {
	return s == VerificationApproved || s == VerificationRejected
}
