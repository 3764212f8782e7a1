// Package domain contains the core entities served to the kiosk.
// This package has no external dependencies (only stdlib).
package domain

import "time"

// VideoItem is a single playable video or live stream.
type VideoItem struct {
	ID        string `json:"id"`        // YouTube video ID
	Title     string `json:"title"`     // Display title
	Thumbnail string `json:"thumbnail"` // Medium thumbnail URL, may be empty
}

// Playlist is a recorded-video playlist with its videos in platform order.
type Playlist struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Videos []VideoItem `json:"videos"`
}

// AppData is the aggregate handed to the presentation layer and the unit of caching.
type AppData struct {
	LiveStreams []VideoItem `json:"liveStreams"`
	Playlists   []Playlist  `json:"playlists"`
}

// EmptyAppData returns an aggregate with empty, non-nil sequences.
func EmptyAppData() AppData {
	return AppData{
		LiveStreams: []VideoItem{},
		Playlists:   []Playlist{},
	}
}

// Normalize replaces nil sequences with empty ones so the aggregate
// always serializes as arrays, never null.
func (d AppData) Normalize() AppData {
	if d.LiveStreams == nil {
		d.LiveStreams = []VideoItem{}
	}
	if d.Playlists == nil {
		d.Playlists = []Playlist{}
		return d
	}

	playlists := make([]Playlist, len(d.Playlists))
	for i, p := range d.Playlists {
		if p.Videos == nil {
			p.Videos = []VideoItem{}
		}
		playlists[i] = p
	}
	d.Playlists = playlists

	return d
}

// VideoCount returns the total number of recorded videos across all playlists.
func (d AppData) VideoCount() int {
	total := 0
	for _, p := range d.Playlists {
		total += len(p.Videos)
	}
	return total
}

// FindPlaylist returns the playlist with the given ID.
func (d AppData) FindPlaylist(id string) (Playlist, bool) {
	for _, p := range d.Playlists {
		if p.ID == id {
			return p, true
		}
	}
	return Playlist{}, false
}

// FindVideo searches every playlist for the given video ID.
func (d AppData) FindVideo(id string) (VideoItem, bool) {
	for _, p := range d.Playlists {
		for _, v := range p.Videos {
			if v.ID == id {
				return v, true
			}
		}
	}
	return VideoItem{}, false
}

// CacheEnvelope is the persisted form of an aggregate.
// It is replaced wholesale on every write, never mutated.
type CacheEnvelope struct {
	Timestamp int64   `json:"timestamp"` // epoch milliseconds at write time
	Data      AppData `json:"data"`
}

// NewCacheEnvelope stamps data with the given write time.
func NewCacheEnvelope(data AppData, now time.Time) CacheEnvelope {
	return CacheEnvelope{
		Timestamp: now.UnixMilli(),
		Data:      data,
	}
}

// WrittenAt returns the write time as a time.Time.
func (e CacheEnvelope) WrittenAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Age returns how long ago the envelope was written.
func (e CacheEnvelope) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-e.Timestamp) * time.Millisecond
}

// IsFresh reports whether now - timestamp <= ttl.
func (e CacheEnvelope) IsFresh(now time.Time, ttl time.Duration) bool {
	return e.Age(now) <= ttl
}
