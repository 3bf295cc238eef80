package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// envelope is the wire shape of every API response
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client is a typed HTTP client for the music service API. A client is
// bound to one session: the bearer token, when set, is attached to every
// request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an API client for the given base URL (e.g.
// "http://localhost:8080/api"). token may be empty for an
// unauthenticated session.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Authenticated reports whether the client carries a bearer credential
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// do performs one API request and decodes the envelope's data into out
// (when out is non-nil). HTTP statuses are mapped onto the package's
// error taxonomy; anything below the application layer becomes
// ErrTransport.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrTransport, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return apiError(resp.StatusCode, env.Error)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode data: %v", ErrTransport, err)
		}
	}
	return nil
}

// apiError maps an HTTP status and server message onto the error taxonomy
func apiError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, message)
	default:
		return fmt.Errorf("%w: server error (%d): %s", ErrTransport, status, message)
	}
}

// ListSongs fetches the full song catalog
func (c *Client) ListSongs(ctx context.Context) ([]Song, error) {
	var songs []Song
	if err := c.do(ctx, http.MethodGet, "/songs", nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// RegisterPlay increments a song's play counter and returns the new count
func (c *Client) RegisterPlay(ctx context.Context, songID string) (int64, error) {
	var data struct {
		Plays int64 `json:"plays"`
	}
	body := map[string]string{"songId": songID}
	if err := c.do(ctx, http.MethodPost, "/songs/plays", body, &data); err != nil {
		return 0, err
	}
	return data.Plays, nil
}

// SetLike sets or clears the session user's like for a song and returns
// the authoritative liked flag and count
func (c *Client) SetLike(ctx context.Context, songID string, liked bool) (bool, int64, error) {
	var data struct {
		Liked bool  `json:"liked"`
		Likes int64 `json:"likes"`
	}
	body := map[string]interface{}{"songId": songID, "liked": liked}
	if err := c.do(ctx, http.MethodPost, "/songs/likes", body, &data); err != nil {
		return false, 0, err
	}
	return data.Liked, data.Likes, nil
}

// ListPlaylists fetches the session user's playlists, newest first
func (c *Client) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	var playlists []Playlist
	if err := c.do(ctx, http.MethodGet, "/playlists", nil, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// CreatePlaylist creates a playlist and returns it with an empty song list
func (c *Client) CreatePlaylist(ctx context.Context, name string, description *string, isPublic bool) (*Playlist, error) {
	var created Playlist
	body := map[string]interface{}{"name": name, "isPublic": isPublic}
	if description != nil {
		body["description"] = *description
	}
	if err := c.do(ctx, http.MethodPost, "/playlists", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeletePlaylist deletes a playlist owned by the session user
func (c *Client) DeletePlaylist(ctx context.Context, playlistID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/playlists/%d", playlistID), nil, nil)
}

// AddPlaylistSong appends a song to a playlist and returns the new entry
func (c *Client) AddPlaylistSong(ctx context.Context, playlistID int, songID string) (*PlaylistEntry, error) {
	var entry PlaylistEntry
	body := map[string]interface{}{"playlistId": playlistID, "songId": songID}
	if err := c.do(ctx, http.MethodPost, "/playlists/songs", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemovePlaylistSong removes a song from a playlist; the server renumbers
// the remaining entries
func (c *Client) RemovePlaylistSong(ctx context.Context, playlistID int, songID string) error {
	body := map[string]interface{}{"playlistId": playlistID, "songId": songID}
	return c.do(ctx, http.MethodDelete, "/playlists/songs", body, nil)
}
