package timeline

import (
	"github.com/google/uuid"

	"github.com/rosenlund/cutline/internal/apperr"
	"github.com/rosenlund/cutline/internal/models"
)

// Model owns the ordered track list and the clip set, the playhead, and
// the single-clip selection. It recomputes the derived total duration on
// every mutation so reads are never stale.
//
// Model is not safe for concurrent use; the editor session serializes
// access to it.
type Model struct {
	tracks         []models.Track
	clips          []models.Clip
	currentTime    float64
	totalDuration  float64
	selectedClipID string
	defaultClipSec float64
}

// Snapshot is an immutable copy of the model state for API and event payloads.
type Snapshot struct {
	Tracks         []models.Track `json:"tracks"`
	Clips          []models.Clip  `json:"clips"`
	CurrentTime    float64        `json:"current_time"`
	TotalDuration  float64        `json:"total_duration"`
	SelectedClipID string         `json:"selected_clip_id,omitempty"`
}

// NewModel creates a model with the given fixed track set. Tracks are
// immutable after construction. defaultClipSeconds is used for clips
// placed from media whose duration has not resolved yet.
func NewModel(tracks []models.Track, defaultClipSeconds float64) *Model {
	ts := make([]models.Track, len(tracks))
	copy(ts, tracks)
	return &Model{
		tracks:         ts,
		defaultClipSec: defaultClipSeconds,
	}
}

// Tracks returns a copy of the ordered track list.
func (m *Model) Tracks() []models.Track {
	out := make([]models.Track, len(m.tracks))
	copy(out, m.tracks)
	return out
}

// Clips returns a copy of the current clip set.
func (m *Model) Clips() []models.Clip {
	out := make([]models.Clip, len(m.clips))
	copy(out, m.clips)
	return out
}

// Clip looks up a clip by id.
func (m *Model) Clip(id string) (models.Clip, bool) {
	for _, c := range m.clips {
		if c.ID == id {
			return c, true
		}
	}
	return models.Clip{}, false
}

// AddClip places a new clip for the given media item. The clip snapshots
// the item's name, kind, and duration; an unresolved duration falls back
// to the configured default. An out-of-range track index is rejected,
// never clamped. Overlaps with existing clips are permitted.
func (m *Model) AddClip(item models.MediaItem, trackIndex int, startTime float64) (models.Clip, error) {
	if trackIndex < 0 || trackIndex >= len(m.tracks) {
		return models.Clip{}, apperr.ErrInvalidTrack
	}
	if startTime < 0 {
		startTime = 0
	}
	dur := item.DurationSeconds
	if dur <= 0 {
		dur = m.defaultClipSec
	}
	clip := models.Clip{
		ID:              uuid.NewString(),
		MediaID:         item.ID,
		TrackIndex:      trackIndex,
		StartTime:       startTime,
		DurationSeconds: dur,
		Name:            item.Name,
		Kind:            item.Kind,
	}
	m.clips = append(m.clips, clip)
	m.recompute()
	return clip, nil
}

// MoveClip sets a clip's start time, clamped to zero. There is no
// collision check: overlapping clips on the same track are retained.
func (m *Model) MoveClip(id string, newStartTime float64) error {
	if newStartTime < 0 {
		newStartTime = 0
	}
	for i := range m.clips {
		if m.clips[i].ID == id {
			m.clips[i].StartTime = newStartTime
			m.recompute()
			return nil
		}
	}
	return apperr.ErrNotFound
}

// DeleteClip removes a clip; unknown ids are ignored. Deleting the
// selected clip clears the selection.
func (m *Model) DeleteClip(id string) {
	for i := range m.clips {
		if m.clips[i].ID == id {
			m.clips = append(m.clips[:i], m.clips[i+1:]...)
			if m.selectedClipID == id {
				m.selectedClipID = ""
			}
			m.recompute()
			return
		}
	}
}

// Select marks the given clip as the single selected clip.
func (m *Model) Select(id string) error {
	if _, ok := m.Clip(id); !ok {
		return apperr.ErrNotFound
	}
	m.selectedClipID = id
	return nil
}

// ClearSelection removes any selection.
func (m *Model) ClearSelection() {
	m.selectedClipID = ""
}

// SelectedClipID returns the id of the selected clip, or empty string.
func (m *Model) SelectedClipID() string {
	return m.selectedClipID
}

// SetCurrentTime moves the playhead, clamped to [0, TotalDuration], and
// returns the applied value.
func (m *Model) SetCurrentTime(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > m.totalDuration {
		t = m.totalDuration
	}
	m.currentTime = t
	return t
}

// CurrentTime returns the playhead position.
func (m *Model) CurrentTime() float64 {
	return m.currentTime
}

// TotalDuration returns the derived timeline length.
func (m *Model) TotalDuration() float64 {
	return m.totalDuration
}

// Snapshot copies the full model state.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Tracks:         m.Tracks(),
		Clips:          m.Clips(),
		CurrentTime:    m.currentTime,
		TotalDuration:  m.totalDuration,
		SelectedClipID: m.selectedClipID,
	}
}

// recompute refreshes the derived total duration and keeps the playhead
// inside the new bounds.
func (m *Model) recompute() {
	var max float64
	for _, c := range m.clips {
		if end := c.EndTime(); end > max {
			max = end
		}
	}
	m.totalDuration = max
	if m.currentTime > max {
		m.currentTime = max
	}
}
