package player

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory music service for controller tests: it serves
// the catalog, counts plays, and records likes. Play handling can be
// made to fail or block to exercise the transition guard.
type fakeAPI struct {
	mu           sync.Mutex
	songs        []Song
	plays        map[string]int64
	likes        map[string]int64
	playCalls    int32
	playFailures int
	holdSong     string
	release      chan struct{}
}

func newFakeAPI(songs ...Song) *fakeAPI {
	return &fakeAPI{
		songs: songs,
		plays: make(map[string]int64),
		likes: make(map[string]int64),
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/songs":
		f.mu.Lock()
		songs := append([]Song(nil), f.songs...)
		f.mu.Unlock()
		writeData(w, http.StatusOK, songs)

	case r.Method == http.MethodPost && r.URL.Path == "/songs/plays":
		var body struct {
			SongID string `json:"songId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		atomic.AddInt32(&f.playCalls, 1)

		f.mu.Lock()
		hold := f.holdSong == body.SongID && f.release != nil
		release := f.release
		fail := f.playFailures > 0
		if fail {
			f.playFailures--
		}
		f.mu.Unlock()

		if hold {
			<-release
		}
		if fail {
			writeErr(w, http.StatusInternalServerError, "temporarily unavailable")
			return
		}

		f.mu.Lock()
		f.plays[body.SongID]++
		n := f.plays[body.SongID]
		f.mu.Unlock()
		writeData(w, http.StatusOK, map[string]int64{"plays": n})

	case r.Method == http.MethodPost && r.URL.Path == "/songs/likes":
		var body struct {
			SongID string `json:"songId"`
			Liked  bool   `json:"liked"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		if body.Liked {
			f.likes[body.SongID]++
		} else if f.likes[body.SongID] > 0 {
			f.likes[body.SongID]--
		}
		n := f.likes[body.SongID]
		f.mu.Unlock()
		writeData(w, http.StatusOK, map[string]interface{}{"liked": body.Liked, "likes": n})

	default:
		writeErr(w, http.StatusNotFound, "Not found")
	}
}

func (f *fakeAPI) playCount() int32 {
	return atomic.LoadInt32(&f.playCalls)
}

type playerFixture struct {
	api       *fakeAPI
	catalog   *Catalog
	playlists *Playlists
	notify    *spyNotifier
	ctrl      *Controller
}

func newPlayerFixture(t *testing.T, token string, songs ...Song) *playerFixture {
	t.Helper()

	api := newFakeAPI(songs...)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, token, 2*time.Second)
	catalog := NewCatalog(client)
	playlists := NewPlaylists(client)
	notify := &spyNotifier{}
	syncer := NewSync(client, catalog, notify, 2, time.Millisecond)
	ctrl := NewController(client, catalog, playlists, syncer, notify)
	t.Cleanup(ctrl.Close)

	require.NoError(t, catalog.Load(context.Background()))
	return &playerFixture{
		api:       api,
		catalog:   catalog,
		playlists: playlists,
		notify:    notify,
		ctrl:      ctrl,
	}
}

func TestControllerSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("plays and registers exactly one play", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
		song, _ := fx.catalog.Get("s1")

		require.NoError(t, fx.ctrl.Select(ctx, &song))
		fx.ctrl.Close()

		assert.Equal(t, StatePlaying, fx.ctrl.State())
		assert.EqualValues(t, 1, fx.api.playCount())

		// The confirmed count flows back into both the catalog and the
		// active song.
		got, _ := fx.catalog.Get("s1")
		assert.Equal(t, int64(1), got.Plays)
		require.NotNil(t, fx.ctrl.Current())
		assert.Equal(t, int64(1), fx.ctrl.Current().Plays)
	})

	t.Run("selecting the playing song twice registers once", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
		song, _ := fx.catalog.Get("s1")

		require.NoError(t, fx.ctrl.Select(ctx, &song))
		require.NoError(t, fx.ctrl.Select(ctx, &song))
		fx.ctrl.Close()

		assert.EqualValues(t, 1, fx.api.playCount())
	})

	t.Run("nil clears the session", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
		song, _ := fx.catalog.Get("s1")

		require.NoError(t, fx.ctrl.Select(ctx, &song))
		fx.ctrl.Close()
		require.NoError(t, fx.ctrl.Select(ctx, nil))

		assert.Equal(t, StateIdle, fx.ctrl.State())
		assert.Nil(t, fx.ctrl.Current())
	})

	t.Run("song without audio is rejected", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))

		err := fx.ctrl.Select(ctx, &Song{ID: "broken", Title: "No Audio"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, StateIdle, fx.ctrl.State())
		assert.Nil(t, fx.ctrl.Current())
		assert.Len(t, fx.notify.Errors(), 1)
	})

	t.Run("unauthenticated sessions play without registering", func(t *testing.T) {
		fx := newPlayerFixture(t, "", makeSong("s1", "Pop"))
		song, _ := fx.catalog.Get("s1")

		require.NoError(t, fx.ctrl.Select(ctx, &song))
		fx.ctrl.Close()

		assert.Equal(t, StatePlaying, fx.ctrl.State())
		assert.Zero(t, fx.api.playCount())
	})

	t.Run("registration failure does not interrupt playback", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
		fx.api.playFailures = 1
		song, _ := fx.catalog.Get("s1")

		require.NoError(t, fx.ctrl.Select(ctx, &song))
		fx.ctrl.Close()

		assert.Equal(t, StatePlaying, fx.ctrl.State())
		assert.Len(t, fx.notify.Warns(), 1)

		got, _ := fx.catalog.Get("s1")
		assert.Equal(t, int64(0), got.Plays)
	})
}

func TestControllerStaleRegistrationDiscarded(t *testing.T) {
	ctx := context.Background()
	fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"), makeSong("s2", "Pop"))

	release := make(chan struct{})
	fx.api.mu.Lock()
	fx.api.holdSong = "s1"
	fx.api.release = release
	fx.api.mu.Unlock()

	s1, _ := fx.catalog.Get("s1")
	s2, _ := fx.catalog.Get("s2")

	require.NoError(t, fx.ctrl.Select(ctx, &s1))
	require.NoError(t, fx.ctrl.Select(ctx, &s2))
	close(release)
	fx.ctrl.Close()

	// The superseded transition completes on the server but its result
	// must not surface locally.
	assert.EqualValues(t, 2, fx.api.playCount())
	got1, _ := fx.catalog.Get("s1")
	assert.Equal(t, int64(0), got1.Plays)

	got2, _ := fx.catalog.Get("s2")
	assert.Equal(t, int64(1), got2.Plays)
	require.NotNil(t, fx.ctrl.Current())
	assert.Equal(t, "s2", fx.ctrl.Current().ID)
	assert.Equal(t, StatePlaying, fx.ctrl.State())
}

func TestControllerNext(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *playerFixture {
		fx := newPlayerFixture(t, "",
			makeSong("s1", "Pop"), makeSong("s2", "Pop"), makeSong("s3", "Pop"))
		fx.ctrl.SetGenreFilter(AllGenres)
		return fx
	}

	t.Run("advances through the queue", func(t *testing.T) {
		fx := setup(t)
		s1, _ := fx.catalog.Get("s1")
		require.NoError(t, fx.ctrl.Select(ctx, &s1))

		require.NoError(t, fx.ctrl.Next(ctx))
		assert.Equal(t, "s2", fx.ctrl.Current().ID)
	})

	t.Run("end of queue without repeat clears the session", func(t *testing.T) {
		fx := setup(t)
		s3, _ := fx.catalog.Get("s3")
		require.NoError(t, fx.ctrl.Select(ctx, &s3))

		require.NoError(t, fx.ctrl.Next(ctx))
		assert.Equal(t, StateIdle, fx.ctrl.State())
		assert.Nil(t, fx.ctrl.Current())
	})

	t.Run("repeat all wraps to the first song", func(t *testing.T) {
		fx := setup(t)
		s3, _ := fx.catalog.Get("s3")
		require.NoError(t, fx.ctrl.Select(ctx, &s3))

		assert.Equal(t, RepeatAll, fx.ctrl.CycleRepeat())
		require.NoError(t, fx.ctrl.Next(ctx))
		assert.Equal(t, "s1", fx.ctrl.Current().ID)
	})

	t.Run("no active song is a no-op", func(t *testing.T) {
		fx := setup(t)
		require.NoError(t, fx.ctrl.Next(ctx))
		assert.Equal(t, StateIdle, fx.ctrl.State())
	})
}

func TestControllerNextRepeatOneReregisters(t *testing.T) {
	ctx := context.Background()
	fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
	fx.ctrl.SetGenreFilter(AllGenres)

	require.Equal(t, RepeatAll, fx.ctrl.CycleRepeat())
	require.Equal(t, RepeatOne, fx.ctrl.CycleRepeat())

	s1, _ := fx.catalog.Get("s1")
	require.NoError(t, fx.ctrl.Select(ctx, &s1))
	fx.ctrl.Close()
	require.NoError(t, fx.ctrl.Next(ctx))
	fx.ctrl.Close()

	// Replaying the same song is a fresh transition, not a no-op.
	assert.EqualValues(t, 2, fx.api.playCount())
	got, _ := fx.catalog.Get("s1")
	assert.Equal(t, int64(2), got.Plays)
}

func TestControllerPrevious(t *testing.T) {
	ctx := context.Background()
	fx := newPlayerFixture(t, "",
		makeSong("s1", "Pop"), makeSong("s2", "Pop"), makeSong("s3", "Pop"))
	fx.ctrl.SetGenreFilter(AllGenres)

	s1, _ := fx.catalog.Get("s1")
	require.NoError(t, fx.ctrl.Select(ctx, &s1))

	require.NoError(t, fx.ctrl.Previous(ctx))
	assert.Equal(t, "s3", fx.ctrl.Current().ID, "previous wraps from the first song")

	require.NoError(t, fx.ctrl.Previous(ctx))
	assert.Equal(t, "s2", fx.ctrl.Current().ID)
}

func TestControllerTogglePlay(t *testing.T) {
	ctx := context.Background()
	fx := newPlayerFixture(t, "", makeSong("s1", "Pop"))

	fx.ctrl.TogglePlay()
	assert.Equal(t, StateIdle, fx.ctrl.State(), "toggling while idle does nothing")

	s1, _ := fx.catalog.Get("s1")
	require.NoError(t, fx.ctrl.Select(ctx, &s1))

	fx.ctrl.TogglePlay()
	assert.Equal(t, StatePaused, fx.ctrl.State())
	fx.ctrl.TogglePlay()
	assert.Equal(t, StatePlaying, fx.ctrl.State())
}

func TestControllerSetQueue(t *testing.T) {
	ctx := context.Background()
	fx := newPlayerFixture(t, "", makeSong("s1", "Pop"), makeSong("s2", "Indie"))

	s1, _ := fx.catalog.Get("s1")
	require.NoError(t, fx.ctrl.Select(ctx, &s1))

	t.Run("keeps playing when the active song survives", func(t *testing.T) {
		fx.ctrl.SetGenreFilter("Pop")
		assert.Equal(t, StatePlaying, fx.ctrl.State())
		require.Len(t, fx.ctrl.Queue(), 1)
	})

	t.Run("stops and clears when the active song is filtered out", func(t *testing.T) {
		fx.ctrl.SetGenreFilter("Indie")
		assert.Equal(t, StateIdle, fx.ctrl.State())
		assert.Nil(t, fx.ctrl.Current())
		assert.Equal(t, "Indie", fx.ctrl.GenreFilter())
	})
}

func TestControllerPlayPlaylist(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown playlist", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
		err := fx.ctrl.PlayPlaylist(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty playlist notifies and changes nothing", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
		fx.playlists.lists = []Playlist{{ID: 1, Name: "Empty"}}

		require.NoError(t, fx.ctrl.PlayPlaylist(ctx, 1))
		assert.Equal(t, StateIdle, fx.ctrl.State())
		assert.Len(t, fx.notify.Errors(), 1)
	})

	t.Run("plays from the first entry in order", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"), makeSong("s2", "Pop"))
		s1, _ := fx.catalog.Get("s1")
		s2, _ := fx.catalog.Get("s2")
		fx.playlists.lists = []Playlist{{
			ID:   1,
			Name: "Mix",
			Songs: []PlaylistEntry{
				{PlaylistID: 1, SongID: "s2", Order: 1, Song: &s2},
				{PlaylistID: 1, SongID: "s1", Order: 0, Song: &s1},
			},
		}}

		require.NoError(t, fx.ctrl.PlayPlaylist(ctx, 1))
		fx.ctrl.Close()

		require.NotNil(t, fx.ctrl.Current())
		assert.Equal(t, "s1", fx.ctrl.Current().ID)

		id, ok := fx.ctrl.ActivePlaylist()
		require.True(t, ok)
		assert.Equal(t, 1, id)

		q := fx.ctrl.Queue()
		require.Len(t, q, 2)
		assert.Equal(t, "s1", q[0].ID)
		assert.Equal(t, "s2", q[1].ID)
	})
}

func TestControllerToggleShuffle(t *testing.T) {
	fx := newPlayerFixture(t, "", makeSong("s1", "Pop"))

	assert.False(t, fx.ctrl.Shuffle())
	assert.True(t, fx.ctrl.ToggleShuffle())
	assert.False(t, fx.ctrl.ToggleShuffle())
}

func TestControllerToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("no active song is a no-op", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
		require.NoError(t, fx.ctrl.ToggleLike(ctx))
	})

	t.Run("inverts the latest confirmed state", func(t *testing.T) {
		fx := newPlayerFixture(t, "token", makeSong("s1", "Pop"))
		s1, _ := fx.catalog.Get("s1")
		require.NoError(t, fx.ctrl.Select(ctx, &s1))
		fx.ctrl.Close()

		require.NoError(t, fx.ctrl.ToggleLike(ctx))
		got, _ := fx.catalog.Get("s1")
		assert.True(t, got.Liked)
		assert.Equal(t, int64(1), got.Likes)
		assert.True(t, fx.ctrl.Current().Liked, "the active song is refreshed")

		require.NoError(t, fx.ctrl.ToggleLike(ctx))
		got, _ = fx.catalog.Get("s1")
		assert.False(t, got.Liked)
		assert.Equal(t, int64(0), got.Likes)
	})
}
