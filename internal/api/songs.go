package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statik-fm/rhythm/internal/auth"
	"github.com/statik-fm/rhythm/internal/catalog"
	"github.com/statik-fm/rhythm/internal/logger"
)

// RegisterPlayRequest represents a request to increment a song's play count
type RegisterPlayRequest struct {
	SongID string `json:"songId" binding:"required"`
}

// UpdateLikeRequest represents a request to set or clear a song like.
// Liked is a pointer so a missing or non-boolean value fails binding.
type UpdateLikeRequest struct {
	SongID string `json:"songId" binding:"required"`
	Liked  *bool  `json:"liked" binding:"required"`
}

// SongsHandler handles song catalog API requests
type SongsHandler struct {
	catalogService *catalog.Service
}

// NewSongsHandler creates a new songs handler instance
func NewSongsHandler(catalogService *catalog.Service) *SongsHandler {
	return &SongsHandler{catalogService: catalogService}
}

// ListSongs handles GET /api/songs. Authentication is optional; without
// it every song reports liked=false.
func (h *SongsHandler) ListSongs(c *gin.Context) {
	viewerID := ""
	if identity, ok := auth.IdentityFrom(c); ok {
		viewerID = identity.UserID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	songs, err := h.catalogService.ListSongs(ctx, viewerID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Msg("Failed to list songs")
		respondError(c, http.StatusInternalServerError, "Failed to fetch songs")
		return
	}

	respondData(c, http.StatusOK, songs)
}

// RegisterPlay handles POST /api/songs/plays
func (h *SongsHandler) RegisterPlay(c *gin.Context) {
	var req RegisterPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing songId")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	plays, err := h.catalogService.RegisterPlay(ctx, req.SongID)
	if err != nil {
		if errors.Is(err, catalog.ErrSongNotFound) {
			respondError(c, http.StatusNotFound, "Song not found")
			return
		}
		logger.Log.Error().
			Err(err).
			Str("song_id", req.SongID).
			Msg("Failed to register play")
		respondError(c, http.StatusInternalServerError, "Failed to update play count")
		return
	}

	respondData(c, http.StatusOK, gin.H{"plays": plays})
}

// UpdateLike handles POST /api/songs/likes
func (h *SongsHandler) UpdateLike(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: songId and liked (boolean) are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	liked, likes, err := h.catalogService.SetLike(ctx, req.SongID, identity.UserID, *req.Liked)
	if err != nil {
		if errors.Is(err, catalog.ErrSongNotFound) {
			respondError(c, http.StatusNotFound, "Song not found")
			return
		}
		logger.Log.Error().
			Err(err).
			Str("song_id", req.SongID).
			Msg("Failed to update like")
		respondError(c, http.StatusInternalServerError, "Failed to update like status")
		return
	}

	respondData(c, http.StatusOK, gin.H{"liked": liked, "likes": likes})
}

// SetupSongRoutes registers song catalog routes
func SetupSongRoutes(apiGroup *gin.RouterGroup, catalogService *catalog.Service, verifier *auth.Verifier) {
	handler := NewSongsHandler(catalogService)

	apiGroup.GET("/songs", auth.Optional(verifier), handler.ListSongs)
	apiGroup.POST("/songs/plays", auth.Optional(verifier), handler.RegisterPlay)
	apiGroup.POST("/songs/likes", auth.Required(verifier), handler.UpdateLike)
}
