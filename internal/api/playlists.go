package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statik-fm/rhythm/internal/auth"
	"github.com/statik-fm/rhythm/internal/logger"
	"github.com/statik-fm/rhythm/internal/playlist"
)

// CreatePlaylistRequest represents a request to create a new playlist
type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// PlaylistSongRequest represents a request to add or remove a playlist song
type PlaylistSongRequest struct {
	PlaylistID int    `json:"playlistId" binding:"required"`
	SongID     string `json:"songId" binding:"required"`
}

// PlaylistsHandler handles playlist API requests
type PlaylistsHandler struct {
	playlistService *playlist.Service
}

// NewPlaylistsHandler creates a new playlists handler instance
func NewPlaylistsHandler(playlistService *playlist.Service) *PlaylistsHandler {
	return &PlaylistsHandler{playlistService: playlistService}
}

// ListPlaylists handles GET /api/playlists
func (h *PlaylistsHandler) ListPlaylists(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	playlists, err := h.playlistService.List(ctx, identity.UserID)
	if err != nil {
		logger.Log.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("Failed to list playlists")
		respondError(c, http.StatusInternalServerError, "Failed to fetch playlists")
		return
	}

	respondData(c, http.StatusOK, playlists)
}

// CreatePlaylist handles POST /api/playlists
func (h *PlaylistsHandler) CreatePlaylist(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Playlist name is required")
		return
	}

	// Playlists default to public, matching the catalog's sharing model
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	created, err := h.playlistService.Create(ctx, identity.UserID, req.Name, req.Description, isPublic)
	if err != nil {
		switch {
		case errors.Is(err, playlist.ErrDuplicateName):
			respondError(c, http.StatusConflict, "Playlist name already exists")
		case errors.Is(err, playlist.ErrEmptyName):
			respondError(c, http.StatusBadRequest, "Playlist name is required")
		default:
			logger.Log.Error().
				Err(err).
				Str("user_id", identity.UserID).
				Msg("Failed to create playlist")
			respondError(c, http.StatusInternalServerError, "Failed to create playlist")
		}
		return
	}

	respondData(c, http.StatusCreated, created)
}

// DeletePlaylist handles DELETE /api/playlists/:id
func (h *PlaylistsHandler) DeletePlaylist(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlistID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Playlist not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.playlistService.Delete(ctx, playlistID, identity.UserID); err != nil {
		if errors.Is(err, playlist.ErrPlaylistNotFound) {
			respondError(c, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Log.Error().
			Err(err).
			Int("playlist_id", playlistID).
			Msg("Failed to delete playlist")
		respondError(c, http.StatusInternalServerError, "Failed to delete playlist")
		return
	}

	respondEmpty(c, http.StatusOK)
}

// AddSong handles POST /api/playlists/songs
func (h *PlaylistsHandler) AddSong(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PlaylistSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Playlist ID and Song ID are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.playlistService.AddSong(ctx, req.PlaylistID, req.SongID, identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, playlist.ErrPlaylistNotFound):
			respondError(c, http.StatusNotFound, "Playlist not found")
		case errors.Is(err, playlist.ErrSongNotFound):
			respondError(c, http.StatusNotFound, "Song not found")
		case errors.Is(err, playlist.ErrSongAlreadyPresent):
			respondError(c, http.StatusBadRequest, "Song already in playlist")
		default:
			logger.Log.Error().
				Err(err).
				Int("playlist_id", req.PlaylistID).
				Str("song_id", req.SongID).
				Msg("Failed to add song to playlist")
			respondError(c, http.StatusInternalServerError, "Failed to add song to playlist")
		}
		return
	}

	respondData(c, http.StatusCreated, entry)
}

// RemoveSong handles DELETE /api/playlists/songs
func (h *PlaylistsHandler) RemoveSong(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PlaylistSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Playlist ID and Song ID are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.playlistService.RemoveSong(ctx, req.PlaylistID, req.SongID, identity.UserID); err != nil {
		switch {
		case errors.Is(err, playlist.ErrPlaylistNotFound), errors.Is(err, playlist.ErrSongNotPresent):
			respondError(c, http.StatusNotFound, "Song not in playlist")
		default:
			logger.Log.Error().
				Err(err).
				Int("playlist_id", req.PlaylistID).
				Str("song_id", req.SongID).
				Msg("Failed to remove song from playlist")
			respondError(c, http.StatusInternalServerError, "Failed to remove song from playlist")
		}
		return
	}

	respondEmpty(c, http.StatusOK)
}

// SetupPlaylistRoutes registers playlist routes; all require authentication
func SetupPlaylistRoutes(apiGroup *gin.RouterGroup, playlistService *playlist.Service, verifier *auth.Verifier) {
	handler := NewPlaylistsHandler(playlistService)
	authed := apiGroup.Group("", auth.Required(verifier))

	authed.GET("/playlists", handler.ListPlaylists)
	authed.POST("/playlists", handler.CreatePlaylist)
	authed.DELETE("/playlists/:id", handler.DeletePlaylist)
	authed.POST("/playlists/songs", handler.AddSong)
	authed.DELETE("/playlists/songs", handler.RemoveSong)
}
