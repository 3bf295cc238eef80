package player

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sync pushes engagement actions (play registrations, like toggles) to
// the server and folds confirmed results back into the catalog.
type Sync struct {
	client     *Client
	catalog    *Catalog
	notify     Notifier
	retries    int
	retryDelay time.Duration
}

// NewSync builds an engagement syncer. retries is the number of extra
// attempts after the first for like toggles; retryDelay is the fixed
// pause between attempts.
func NewSync(client *Client, catalog *Catalog, notify Notifier, retries int, retryDelay time.Duration) *Sync {
	return &Sync{
		client:     client,
		catalog:    catalog,
		notify:     notify,
		retries:    retries,
		retryDelay: retryDelay,
	}
}

// RegisterPlay reports one play of the song and returns the confirmed
// server-side count. Nothing is applied locally here; the caller decides
// whether the result is still current before folding it in.
func (s *Sync) RegisterPlay(ctx context.Context, songID string) (int64, error) {
	plays, err := s.client.RegisterPlay(ctx, songID)
	if err != nil {
		return 0, fmt.Errorf("register play for %s: %w", songID, err)
	}
	return plays, nil
}

// ToggleLike sets or clears the viewer's like on a song, retrying
// transport failures with a fixed delay. Only once the server confirms
// is the catalog updated; on final failure the local state is left
// untouched and the user is notified.
func (s *Sync) ToggleLike(ctx context.Context, songID string, liked bool) error {
	if !s.client.Authenticated() {
		return fmt.Errorf("toggle like: %w", ErrUnauthenticated)
	}

	attempts := s.retries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}

		confirmed, likes, err := s.client.SetLike(ctx, songID, liked)
		if err == nil {
			s.catalog.ApplyLikeUpdate(songID, confirmed, likes)
			if confirmed {
				s.notify.Info("Added to liked songs")
			} else {
				s.notify.Info("Removed from liked songs")
			}
			return nil
		}

		lastErr = err
		if !errors.Is(err, ErrTransport) {
			break
		}
	}

	s.notify.Error("Could not update like, please try again")
	return fmt.Errorf("toggle like for %s: %w", songID, lastErr)
}
