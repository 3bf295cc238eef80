//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/statik-fm/rhythm/internal/auth"
	"github.com/statik-fm/rhythm/internal/config"
	"github.com/statik-fm/rhythm/internal/db"
	"github.com/statik-fm/rhythm/internal/models"
	"github.com/statik-fm/rhythm/internal/server"
)

const testSecret = "integration-secret"

// setupTestServer boots the full HTTP stack over a fresh migrated
// database and returns its base URL plus direct repository access for
// seeding.
func setupTestServer(t *testing.T) (*httptest.Server, *db.Repositories, func()) {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(tmpFile, false)
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := database.GetSQLDB()
	require.NoError(t, err, "Failed to get SQL DB")

	// Resolve the migrations directory relative to this file so the
	// tests work regardless of working directory.
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "Failed to get current file path")
	migrationsPath := "file://" + filepath.Join(filepath.Dir(filename), "..", "..", "migrations")

	err = db.RunMigrations(sqlDB, migrationsPath)
	require.NoError(t, err, "Failed to run migrations")

	cfg := &config.Config{
		Auth:    config.AuthConfig{JWTSecret: testSecret},
		Logging: config.LoggingConfig{Level: "error"},
	}

	srv := httptest.NewServer(server.New(cfg, database).Router())
	repos := db.NewRepositories(database)

	cleanup := func() {
		srv.Close()
		_ = database.Close()
	}

	return srv, repos, cleanup
}

// mintToken signs an access token the server's verifier accepts
func mintToken(t *testing.T, userID string) string {
	t.Helper()

	claims := auth.TokenClaims{
		UserID:    userID,
		Email:     userID + "@example.com",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err, "Failed to sign test token")
	return signed
}

// seedSongs inserts catalog fixtures mirroring the production seed data
func seedSongs(t *testing.T, repos *db.Repositories, songs ...*models.Song) {
	t.Helper()
	for _, song := range songs {
		require.NoError(t, repos.Songs.Create(context.Background(), song))
	}
}

func strptr(s string) *string {
	return &s
}

func fixtureSong(id, title, genre string) *models.Song {
	return &models.Song{
		ID:       id,
		Title:    title,
		Artist:   "Fixture Artist",
		Duration: 210,
		Cover:    "https://cdn.example.com/covers/" + id + ".jpg",
		Audio:    "https://cdn.example.com/audio/" + id + ".mp3",
		Genre:    strptr(genre),
	}
}

// postJSON sends an authenticated JSON request and decodes the envelope
// data into out when non-nil.
func postJSON(t *testing.T, baseURL, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		if len(env.Data) > 0 {
			require.NoError(t, json.Unmarshal(env.Data, out))
		}
	}
	return resp
}
