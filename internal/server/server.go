// Package server provides the HTTP server setup and routing configuration.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/statik-fm/rhythm/internal/api"
	"github.com/statik-fm/rhythm/internal/artist"
	"github.com/statik-fm/rhythm/internal/auth"
	"github.com/statik-fm/rhythm/internal/catalog"
	"github.com/statik-fm/rhythm/internal/config"
	"github.com/statik-fm/rhythm/internal/db"
	"github.com/statik-fm/rhythm/internal/logger"
	"github.com/statik-fm/rhythm/internal/middleware"
	"github.com/statik-fm/rhythm/internal/playlist"
)

// Server represents the HTTP server
type Server struct {
	config          *config.Config
	db              *db.DB
	repos           *db.Repositories
	verifier        *auth.Verifier
	catalogService  *catalog.Service
	playlistService *playlist.Service
	artistService   *artist.Service
	router          *gin.Engine
	server          *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, database *db.DB) *Server {
	repos := db.NewRepositories(database)

	return &Server{
		config:          cfg,
		db:              database,
		repos:           repos,
		verifier:        auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		catalogService:  catalog.NewService(repos),
		playlistService: playlist.NewService(repos),
		artistService:   artist.NewService(repos),
	}
}

// Router builds and returns the Gin engine with all routes registered.
// Exposed so integration tests can drive the full stack through httptest.
func (s *Server) Router() *gin.Engine {
	if s.router == nil {
		s.setupRouter()
	}
	return s.router
}

// setupRouter initializes the Gin router with middleware and routes
func (s *Server) setupRouter() {
	if s.config.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(middleware.RequestLogger())
	s.router.Use(gin.Recovery())
	s.router.Use(cors.Default())

	apiGroup := s.router.Group("/api")

	api.SetupHealthRoutes(apiGroup, s.db)
	api.SetupSongRoutes(apiGroup, s.catalogService, s.verifier)
	api.SetupPlaylistRoutes(apiGroup, s.playlistService, s.verifier)
	api.SetupArtistRoutes(apiGroup, s.artistService, s.verifier)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if s.router == nil {
		s.setupRouter()
	}

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	logger.Log.Info().
		Str("host", s.config.Server.Host).
		Int("port", s.config.Server.Port).
		Msg("Starting HTTP server")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Log.Info().Msg("Shutting down server gracefully")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	logger.Log.Info().Msg("Server stopped")
	return nil
}
