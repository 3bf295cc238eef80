package player

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// State is the playback lifecycle phase of the controller.
type State string

// Playback states. Loading covers the window between selecting a song
// and the play registration settling.
const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

// Controller owns the playback session: the active song, the queue,
// shuffle and repeat flags, and the in-flight play-registration guard.
// All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex
	wg sync.WaitGroup

	client    *Client
	catalog   *Catalog
	playlists *Playlists
	sync      *Sync
	notify    Notifier
	rng       *rand.Rand

	state    State
	current  *Song
	queue    Queue
	genre    string
	playlist *int
	shuffle  bool
	repeat   RepeatMode

	// seq tags the latest transition; a registration result whose tag no
	// longer matches is discarded without touching any state.
	seq uint64
}

// NewController wires the playback controller over the stores and the
// engagement syncer. The catalog's update hook keeps the active song and
// queue entries refreshed when confirmed counters land.
func NewController(client *Client, catalog *Catalog, playlists *Playlists, syncer *Sync, notify Notifier) *Controller {
	c := &Controller{
		client:    client,
		catalog:   catalog,
		playlists: playlists,
		sync:      syncer,
		notify:    notify,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		state:     StateIdle,
		genre:     AllGenres,
		repeat:    RepeatNone,
	}
	catalog.OnUpdate(c.refresh)
	return c
}

// refresh replaces stale copies of a song held by the session after the
// catalog applied a confirmed update.
func (c *Controller) refresh(song Song) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.ID == song.ID {
		cur := song
		c.current = &cur
	}
	for i := range c.queue {
		if c.queue[i].ID == song.ID {
			c.queue[i] = song
		}
	}
}

// Select makes the song the active one and starts playing it. A nil song
// clears the session back to idle. A song without an audio source is
// rejected and the session is left untouched. Selecting the song that is
// already loading or playing is a no-op, so a double tap registers only
// one play.
func (c *Controller) Select(ctx context.Context, song *Song) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start(ctx, song, false)
}

// start performs a transition. The caller holds the mutex. force
// restarts the song even when it is already active, used by repeat-one
// and explicit playlist restarts.
func (c *Controller) start(ctx context.Context, song *Song, force bool) error {
	if song == nil {
		c.stop()
		return nil
	}
	if song.Audio == "" {
		c.notify.Error("This song has no audio source")
		return fmt.Errorf("select song %s: missing audio source: %w", song.ID, ErrValidation)
	}
	if !force && c.current != nil && c.current.ID == song.ID &&
		(c.state == StatePlaying || c.state == StateLoading) {
		return nil
	}

	c.seq++
	cur := *song
	c.current = &cur

	if !c.client.Authenticated() {
		c.state = StatePlaying
		return nil
	}

	c.state = StateLoading
	c.wg.Add(1)
	go c.register(ctx, c.seq, cur.ID)
	return nil
}

// register reports the play and folds the confirmed count back in,
// unless the session has moved on to another transition. The catalog
// update runs outside the mutex because its hook re-enters refresh.
func (c *Controller) register(ctx context.Context, tag uint64, songID string) {
	defer c.wg.Done()

	plays, err := c.sync.RegisterPlay(ctx, songID)

	c.mu.Lock()
	if c.seq != tag {
		c.mu.Unlock()
		return
	}
	c.state = StatePlaying
	c.mu.Unlock()

	if err != nil {
		c.notify.Warn("Could not register this play")
		return
	}
	c.catalog.ApplyPlayIncrement(songID, plays)
}

// stop clears the active song and invalidates any in-flight
// registration. The caller holds the mutex.
func (c *Controller) stop() {
	c.seq++
	c.current = nil
	c.state = StateIdle
}

// Next advances to the song after the current one according to the
// shuffle and repeat settings. Reaching the end of the queue without
// repeat-all stops playback and clears the active song.
func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	song, ok := Next(c.current.ID, c.queue, c.shuffle, c.repeat, c.rng)
	if !ok {
		c.stop()
		return nil
	}
	return c.start(ctx, &song, true)
}

// Previous steps back to the song before the current one, wrapping from
// the first to the last. With no active song it does nothing.
func (c *Controller) Previous(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	song, ok := Previous(c.current.ID, c.queue)
	if !ok {
		return nil
	}
	return c.start(ctx, &song, true)
}

// TogglePlay flips between playing and paused. With no active song or a
// transition still loading it does nothing.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StatePlaying:
		c.state = StatePaused
	case StatePaused:
		c.state = StatePlaying
	}
}

// SetQueue replaces the working queue. If the active song is not in the
// new queue, playback stops and the active song is cleared.
func (c *Controller) SetQueue(q Queue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceQueue(q)
}

func (c *Controller) replaceQueue(q Queue) {
	c.queue = q
	if c.current != nil && !q.Contains(c.current.ID) {
		c.stop()
	}
}

// SetGenreFilter derives the queue from the catalog by genre and makes
// it the working queue. The AllGenres sentinel selects everything.
func (c *Controller) SetGenreFilter(genre string) {
	q := DeriveFromFilter(c.catalog.Songs(), genre)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.genre = genre
	c.playlist = nil
	c.replaceQueue(q)
}

// PlayPlaylist derives the queue from the playlist and starts it from
// its first song. An unknown playlist returns ErrNotFound; an empty
// playlist notifies the user and leaves the session untouched.
func (c *Controller) PlayPlaylist(ctx context.Context, playlistID int) error {
	pl, ok := c.playlists.Get(playlistID)
	if !ok {
		return fmt.Errorf("play playlist %d: %w", playlistID, ErrNotFound)
	}
	q := DeriveFromPlaylist(pl.Songs)
	if len(q) == 0 {
		c.notify.Error("This playlist has no songs")
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.playlist = &pl.ID
	c.queue = q
	return c.start(ctx, &q[0], true)
}

// ToggleShuffle flips shuffle and returns the new value.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shuffle = !c.shuffle
	return c.shuffle
}

// CycleRepeat advances the repeat mode and returns the new value.
func (c *Controller) CycleRepeat() RepeatMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repeat = NextRepeatMode(c.repeat)
	return c.repeat
}

// ToggleLike flips the viewer's like on the active song, taking the
// current liked flag from the catalog so the request always inverts the
// latest confirmed state. With no active song it does nothing.
func (c *Controller) ToggleLike(ctx context.Context) error {
	c.mu.Lock()
	cur := c.current
	c.mu.Unlock()

	if cur == nil {
		return nil
	}
	song, ok := c.catalog.Get(cur.ID)
	if !ok {
		song = *cur
	}
	return c.sync.ToggleLike(ctx, song.ID, !song.Liked)
}

// State returns the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns a copy of the active song, or nil when idle.
func (c *Controller) Current() *Song {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	cur := *c.current
	return &cur
}

// Queue returns a copy of the working queue.
func (c *Controller) Queue() Queue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(Queue, len(c.queue))
	copy(out, c.queue)
	return out
}

// Shuffle reports whether shuffle is on.
func (c *Controller) Shuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shuffle
}

// Repeat returns the repeat mode.
func (c *Controller) Repeat() RepeatMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repeat
}

// GenreFilter returns the active genre filter.
func (c *Controller) GenreFilter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.genre
}

// ActivePlaylist returns the playlist the queue was derived from, if
// any.
func (c *Controller) ActivePlaylist() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playlist == nil {
		return 0, false
	}
	return *c.playlist, true
}

// Close waits for any in-flight play registration to finish.
func (c *Controller) Close() {
	c.wg.Wait()
}
