package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/statik-fm/rhythm/internal/artist"
	"github.com/statik-fm/rhythm/internal/auth"
	"github.com/statik-fm/rhythm/internal/logger"
)

// SubmitArtistRequest represents a request to submit an artist profile
// for verification
type SubmitArtistRequest struct {
	Name            string  `json:"name" binding:"required"`
	CoverImage      *string `json:"coverImage,omitempty"`
	GenreTags       string  `json:"genreTags"`
	ArtisticVision  *string `json:"artisticVision,omitempty"`
	VerificationDoc *string `json:"verificationDoc,omitempty"`
}

// ReviewArtistRequest represents a verification review decision
type ReviewArtistRequest struct {
	Status string `json:"status" binding:"required"`
}

// ArtistsHandler handles artist profile API requests
type ArtistsHandler struct {
	artistService *artist.Service
}

// NewArtistsHandler creates a new artists handler instance
func NewArtistsHandler(artistService *artist.Service) *ArtistsHandler {
	return &ArtistsHandler{artistService: artistService}
}

// GetArtist handles GET /api/artists/:id
func (h *ArtistsHandler) GetArtist(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Artist not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.artistService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, artist.ErrProfileNotFound) {
			respondError(c, http.StatusNotFound, "Artist not found")
			return
		}
		logger.Log.Error().
			Err(err).
			Str("profile_id", id.String()).
			Msg("Failed to get artist profile")
		respondError(c, http.StatusInternalServerError, "Failed to fetch artist")
		return
	}

	respondData(c, http.StatusOK, profile)
}

// SubmitArtist handles POST /api/artists
func (h *ArtistsHandler) SubmitArtist(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SubmitArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Artist name is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.artistService.Submit(ctx, identity.UserID, req.Name, req.CoverImage, req.ArtisticVision, req.VerificationDoc, req.GenreTags)
	if err != nil {
		if errors.Is(err, artist.ErrProfileExists) {
			respondError(c, http.StatusConflict, "Artist profile already exists")
			return
		}
		logger.Log.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("Failed to submit artist profile")
		respondError(c, http.StatusInternalServerError, "Failed to submit artist profile")
		return
	}

	respondData(c, http.StatusCreated, profile)
}

// ReviewArtist handles POST /api/artists/:id/review
func (h *ArtistsHandler) ReviewArtist(c *gin.Context) {
	if _, ok := auth.IdentityFrom(c); !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Artist not found")
		return
	}

	var req ReviewArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Review status is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.artistService.Review(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, artist.ErrProfileNotFound):
			respondError(c, http.StatusNotFound, "Artist not found")
		case errors.Is(err, artist.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, "Status must be APPROVED or REJECTED")
		default:
			logger.Log.Error().
				Err(err).
				Str("profile_id", id.String()).
				Msg("Failed to review artist profile")
			respondError(c, http.StatusInternalServerError, "Failed to review artist profile")
		}
		return
	}

	respondData(c, http.StatusOK, profile)
}

// SetupArtistRoutes registers artist profile routes
func SetupArtistRoutes(apiGroup *gin.RouterGroup, artistService *artist.Service, verifier *auth.Verifier) {
	handler := NewArtistsHandler(artistService)

	apiGroup.GET("/artists/:id", handler.GetArtist)
	apiGroup.POST("/artists", auth.Required(verifier), handler.SubmitArtist)
	apiGroup.POST("/artists/:id/review", auth.Required(verifier), handler.ReviewArtist)
}
