// Package models defines the domain types for Cutline.
package models

import "time"

// MediaKind classifies an imported media item by its MIME type prefix.
type MediaKind string

// Media kinds.
const (
	MediaVideo   MediaKind = "video"
	MediaAudio   MediaKind = "audio"
	MediaImage   MediaKind = "image"
	MediaUnknown MediaKind = "unknown"
)

// TrackKind is the fixed kind of a timeline track.
type TrackKind string

// Track kinds.
const (
	TrackVideo TrackKind = "video"
	TrackAudio TrackKind = "audio"
)

// MediaItem is an imported media record owned by the library.
// DurationSeconds is 0 until the external decoder resolves it; it is
// written exactly once and never retried on failure.
type MediaItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Kind            MediaKind `json:"kind"`
	DurationSeconds float64   `json:"duration_seconds"`
	Path            string    `json:"path"`
	Checksum        string    `json:"checksum"`
	CreatedAt       time.Time `json:"created_at"`
}

// Track is a fixed-kind horizontal lane. The track list is fixed at
// construction, so a track's ordinal position is its identity: clips
// reference tracks by index and the ordinal also determines vertical
// stacking order. Tracks hold no time-range state of their own.
type Track struct {
	Name string    `json:"name"`
	Kind TrackKind `json:"kind"`
}

// Clip is a placed instance of a media item on a track. Name, Kind and
// DurationSeconds are snapshotted from the media item at placement time
// and are not kept in sync with later media mutation.
type Clip struct {
	ID              string    `json:"id"`
	MediaID         string    `json:"media_id"`
	TrackIndex      int       `json:"track_index"`
	StartTime       float64   `json:"start_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Name            string    `json:"name"`
	Kind            MediaKind `json:"kind"`
}

// EndTime returns the clip's end position on the timeline.
func (c Clip) EndTime() float64 {
	return c.StartTime + c.DurationSeconds
}
