package player

import (
	"math/rand"
	"sort"
)

// AllGenres is the sentinel filter value that selects the whole catalog.
const AllGenres = "All"

// RepeatMode controls what happens when the queue runs out.
type RepeatMode string

// Repeat modes. RepeatNone stops at the end of the queue, RepeatAll
// wraps to the start, RepeatOne replays the current song.
const (
	RepeatNone RepeatMode = "none"
	RepeatAll  RepeatMode = "all"
	RepeatOne  RepeatMode = "one"
)

// NextRepeatMode cycles none -> all -> one -> none.
func NextRepeatMode(mode RepeatMode) RepeatMode {
	switch mode {
	case RepeatNone:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatNone
	}
}

// Queue is the session-local ordered working set of songs used for
// next/previous navigation. It has no persisted identity and is fully
// replaced whenever the active filter or playlist changes.
type Queue []Song

// DeriveFromFilter returns the songs matching the genre filter, in
// original order. The AllGenres sentinel returns the input unchanged;
// any other value selects songs whose genre matches exactly
// (case-sensitive).
func DeriveFromFilter(songs []Song, genre string) Queue {
	if genre == AllGenres {
		return Queue(songs)
	}
	var out Queue
	for _, s := range songs {
		if s.GenreName() == genre {
			out = append(out, s)
		}
	}
	return out
}

// DeriveFromPlaylist returns the playlist's songs ordered ascending by
// their order value. The sort is stable, so entries with equal order
// values keep their insertion order. Entries without embedded song data
// are skipped.
func DeriveFromPlaylist(entries []PlaylistEntry) Queue {
	sorted := make([]PlaylistEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	var out Queue
	for _, e := range sorted {
		if e.Song != nil {
			out = append(out, *e.Song)
		}
	}
	return out
}

// IndexOf returns the position of the song with the given id, or -1.
func (q Queue) IndexOf(songID string) int {
	for i, s := range q {
		if s.ID == songID {
			return i
		}
	}
	return -1
}

// Contains reports whether the queue holds the song.
func (q Queue) Contains(songID string) bool {
	return q.IndexOf(songID) >= 0
}

// Next returns the song to play after the current one. The second return
// is false when playback should stop: the queue is empty, the current
// song is not in the queue, or the end is reached without RepeatAll.
//
// With RepeatOne the current song is returned again. With shuffle the
// candidate is a uniform-random index over the whole queue; repeats of
// the current song are accepted behavior. Without shuffle the candidate
// is the next index, wrapping to 0 only under RepeatAll.
func Next(currentID string, q Queue, shuffle bool, repeat RepeatMode, rng *rand.Rand) (Song, bool) {
	if len(q) == 0 {
		return Song{}, false
	}

	currentIndex := q.IndexOf(currentID)
	if currentIndex < 0 {
		return Song{}, false
	}

	if repeat == RepeatOne {
		return q[currentIndex], true
	}

	candidate := currentIndex + 1
	if shuffle {
		candidate = rng.Intn(len(q))
	}

	if candidate < len(q) {
		return q[candidate], true
	}
	if repeat == RepeatAll {
		return q[0], true
	}
	return Song{}, false
}

// Previous returns the song before the current one. Unlike Next it
// always wraps: at index 0 it returns the last element regardless of
// repeat mode. The second return is false only when the queue is empty
// or the current song is not in it, in which case the caller does
// nothing.
func Previous(currentID string, q Queue) (Song, bool) {
	if len(q) == 0 {
		return Song{}, false
	}

	currentIndex := q.IndexOf(currentID)
	if currentIndex < 0 {
		return Song{}, false
	}

	if currentIndex == 0 {
		return q[len(q)-1], true
	}
	return q[currentIndex-1], true
}
