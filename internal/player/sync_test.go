package player

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRetryDelay = 5 * time.Millisecond

func newSyncFixture(t *testing.T, handler http.HandlerFunc, token string) (*Sync, *Catalog, *spyNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, token, time.Second)
	catalog := NewCatalog(client)
	catalog.songs = []Song{makeSong("x", "Pop")}
	catalog.loaded = true

	notify := &spyNotifier{}
	return NewSync(client, catalog, notify, 2, testRetryDelay), catalog, notify
}

func TestSyncRegisterPlay(t *testing.T) {
	t.Run("returns the confirmed count without touching the catalog", func(t *testing.T) {
		syncer, catalog, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				SongID string `json:"songId"`
			}
			decodeBody(t, r, &body)
			assert.Equal(t, "x", body.SongID)
			writeData(w, http.StatusOK, map[string]int64{"plays": 8})
		}, "token")

		plays, err := syncer.RegisterPlay(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, int64(8), plays)

		song, _ := catalog.Get("x")
		assert.Equal(t, int64(0), song.Plays, "applying the count is the caller's decision")
	})

	t.Run("maps unknown song to not found", func(t *testing.T) {
		syncer, _, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
			writeErr(w, http.StatusNotFound, "Song not found")
		}, "token")

		_, err := syncer.RegisterPlay(context.Background(), "x")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSyncToggleLikeRetries(t *testing.T) {
	t.Run("succeeds on the third attempt without a user-visible error", func(t *testing.T) {
		var calls int32
		syncer, catalog, notify := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) <= 2 {
				writeErr(w, http.StatusInternalServerError, "temporarily unavailable")
				return
			}
			writeData(w, http.StatusOK, map[string]interface{}{"liked": true, "likes": 5})
		}, "token")

		require.NoError(t, syncer.ToggleLike(context.Background(), "x", true))
		assert.EqualValues(t, 3, atomic.LoadInt32(&calls))

		song, _ := catalog.Get("x")
		assert.True(t, song.Liked)
		assert.Equal(t, int64(5), song.Likes)

		assert.Empty(t, notify.Errors())
		assert.Equal(t, []string{"Added to liked songs"}, notify.Infos())
	})

	t.Run("gives up after three transport failures", func(t *testing.T) {
		var calls int32
		syncer, catalog, notify := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			writeErr(w, http.StatusInternalServerError, "temporarily unavailable")
		}, "token")

		err := syncer.ToggleLike(context.Background(), "x", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTransport)
		assert.EqualValues(t, 3, atomic.LoadInt32(&calls))

		song, _ := catalog.Get("x")
		assert.False(t, song.Liked, "local state is untouched on failure")
		assert.Len(t, notify.Errors(), 1)
	})

	t.Run("does not retry non-transport failures", func(t *testing.T) {
		var calls int32
		syncer, _, notify := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			writeErr(w, http.StatusNotFound, "Song not found")
		}, "token")

		err := syncer.ToggleLike(context.Background(), "x", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
		assert.Len(t, notify.Errors(), 1)
	})
}

func TestSyncToggleLikeUnliking(t *testing.T) {
	syncer, catalog, notify := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SongID string `json:"songId"`
			Liked  bool   `json:"liked"`
		}
		decodeBody(t, r, &body)
		assert.False(t, body.Liked)
		writeData(w, http.StatusOK, map[string]interface{}{"liked": false, "likes": 4})
	}, "token")

	catalog.ApplyLikeUpdate("x", true, 5)

	require.NoError(t, syncer.ToggleLike(context.Background(), "x", false))

	song, _ := catalog.Get("x")
	assert.False(t, song.Liked)
	assert.Equal(t, int64(4), song.Likes)
	assert.Equal(t, []string{"Removed from liked songs"}, notify.Infos())
}

func TestSyncToggleLikeUnauthenticated(t *testing.T) {
	var calls int32
	syncer, _, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, "")

	err := syncer.ToggleLike(context.Background(), "x", true)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestSyncToggleLikeContextCancelled(t *testing.T) {
	var calls int32
	syncer, _, _ := newSyncFixture(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeErr(w, http.StatusInternalServerError, "temporarily unavailable")
	}, "token")
	syncer.retryDelay = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := syncer.ToggleLike(ctx, "x", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "cancellation wins over the retry delay")
}
