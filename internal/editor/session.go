package editor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rosenlund/cutline/internal/medialib"
	"github.com/rosenlund/cutline/internal/models"
	"github.com/rosenlund/cutline/internal/timeline"
)

// Event kinds published by the session.
const (
	EventClipAdded       = "clip.added"
	EventClipMoved       = "clip.moved"
	EventClipRemoved     = "clip.removed"
	EventClipSelected    = "clip.selected"
	EventPlayheadMoved   = "playhead.moved"
	EventPlaybackChanged = "playback.changed"
)

// EventFunc receives session events for fan-out to render consumers.
type EventFunc func(kind string, data any)

// ClipProperties is the property panel snapshot for the selected clip.
// Opacity and volume are display-only and always 100; they are not wired
// into any rendering or audio path.
type ClipProperties struct {
	ClipID          string  `json:"clip_id"`
	Name            string  `json:"name"`
	TrackIndex      int     `json:"track_index"`
	StartTime       float64 `json:"start_time"`
	DurationSeconds float64 `json:"duration_seconds"`
	Opacity         int     `json:"opacity"`
	Volume          int     `json:"volume"`
}

// PlaybackStatus is the payload for playback.changed events and the
// playback endpoints.
type PlaybackStatus struct {
	State       timeline.PlaybackState `json:"state"`
	CurrentTime float64                `json:"current_time"`
}

// Session ties the timeline model, coordinate geometry, playback clock,
// and media library together behind a single mutex. Every mutation of
// the model goes through here, so handlers running on different
// goroutines observe the same serialized interaction order a
// single-threaded editor would have.
type Session struct {
	mu    sync.Mutex
	model *timeline.Model
	geom  timeline.Geometry
	clock *timeline.Clock
	lib   *medialib.Library
	drag  *dragState

	logger *slog.Logger
	emit   EventFunc
}

// NewSession creates a session around the given model. tick is the
// playback timer interval. emit may be nil.
func NewSession(model *timeline.Model, geom timeline.Geometry, lib *medialib.Library, tick time.Duration, logger *slog.Logger, emit EventFunc) *Session {
	if emit == nil {
		emit = func(string, any) {}
	}
	s := &Session{
		model:  model,
		geom:   geom,
		lib:    lib,
		logger: logger,
		emit:   emit,
	}
	s.clock = timeline.NewClock(tick, s.advance, s.publishPlayback)
	return s
}

// Geometry returns the pixel/time mapping constants.
func (s *Session) Geometry() timeline.Geometry {
	return s.geom
}

// Snapshot returns a copy of the full timeline state.
func (s *Session) Snapshot() timeline.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Snapshot()
}

// AddClip places a clip for the given media item. The track index is
// validated, never clamped.
func (s *Session) AddClip(mediaID string, trackIndex int, startTime float64) (models.Clip, error) {
	item, err := s.lib.Get(mediaID)
	if err != nil {
		return models.Clip{}, err
	}
	s.mu.Lock()
	clip, err := s.model.AddClip(item, trackIndex, startTime)
	s.mu.Unlock()
	if err != nil {
		return models.Clip{}, err
	}
	s.emit(EventClipAdded, clip)
	return clip, nil
}

// MoveClip repositions a clip in time, clamped to zero.
func (s *Session) MoveClip(id string, startTime float64) (models.Clip, error) {
	s.mu.Lock()
	err := s.model.MoveClip(id, startTime)
	clip, _ := s.model.Clip(id)
	s.mu.Unlock()
	if err != nil {
		return models.Clip{}, err
	}
	s.emit(EventClipMoved, clip)
	return clip, nil
}

// DeleteClip removes a clip. Unknown ids are a silent no-op.
func (s *Session) DeleteClip(id string) {
	s.mu.Lock()
	_, existed := s.model.Clip(id)
	s.model.DeleteClip(id)
	s.mu.Unlock()
	if existed {
		s.emit(EventClipRemoved, map[string]string{"clip_id": id})
	}
}

// SelectClip marks a clip as the single selection and returns its
// property panel snapshot.
func (s *Session) SelectClip(id string) (ClipProperties, error) {
	s.mu.Lock()
	err := s.model.Select(id)
	var props ClipProperties
	if err == nil {
		props = s.propertiesLocked()
	}
	s.mu.Unlock()
	if err != nil {
		return ClipProperties{}, err
	}
	s.emit(EventClipSelected, props)
	return props, nil
}

// ClearSelection deselects any selected clip.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	s.model.ClearSelection()
	s.mu.Unlock()
}

// Selection returns the property panel snapshot for the selected clip,
// or false when nothing is selected.
func (s *Session) Selection() (ClipProperties, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model.SelectedClipID() == "" {
		return ClipProperties{}, false
	}
	return s.propertiesLocked(), true
}

// propertiesLocked builds the panel snapshot. Caller holds s.mu.
func (s *Session) propertiesLocked() ClipProperties {
	clip, ok := s.model.Clip(s.model.SelectedClipID())
	if !ok {
		return ClipProperties{}
	}
	return ClipProperties{
		ClipID:          clip.ID,
		Name:            clip.Name,
		TrackIndex:      clip.TrackIndex,
		StartTime:       clip.StartTime,
		DurationSeconds: clip.DurationSeconds,
		Opacity:         100,
		Volume:          100,
	}
}

// Play starts the playback clock. No-op while already playing.
func (s *Session) Play() PlaybackStatus {
	s.clock.Play()
	return s.publishPlaybackStatus()
}

// Pause stops the tick and retains the playhead.
func (s *Session) Pause() PlaybackStatus {
	s.clock.Pause()
	return s.publishPlaybackStatus()
}

// Stop stops the tick and resets the playhead to zero.
func (s *Session) Stop() PlaybackStatus {
	s.clock.Stop()
	s.mu.Lock()
	s.model.SetCurrentTime(0)
	s.mu.Unlock()
	return s.publishPlaybackStatus()
}

// TogglePlayback flips between playing and paused/stopped.
func (s *Session) TogglePlayback() PlaybackStatus {
	if s.clock.State() == timeline.StatePlaying {
		return s.Pause()
	}
	return s.Play()
}

// Playback returns the current playback state and playhead.
func (s *Session) Playback() PlaybackStatus {
	s.mu.Lock()
	cur := s.model.CurrentTime()
	s.mu.Unlock()
	return PlaybackStatus{State: s.clock.State(), CurrentTime: cur}
}

// Seek moves the playhead to t, clamped to the timeline bounds, and
// returns the applied value.
func (s *Session) Seek(t float64) float64 {
	s.mu.Lock()
	applied := s.model.SetCurrentTime(t)
	s.mu.Unlock()
	s.emit(EventPlayheadMoved, map[string]float64{"current_time": applied})
	return applied
}

// SeekBy moves the playhead by delta seconds, clamped.
func (s *Session) SeekBy(delta float64) float64 {
	s.mu.Lock()
	applied := s.model.SetCurrentTime(s.model.CurrentTime() + delta)
	s.mu.Unlock()
	s.emit(EventPlayheadMoved, map[string]float64{"current_time": applied})
	return applied
}

// RulerClick seeks the playhead to the time under the clicked ruler
// pixel.
func (s *Session) RulerClick(x float64) float64 {
	return s.Seek(s.geom.TimeFromPixel(x))
}

// Shutdown stops playback. Safe to call more than once.
func (s *Session) Shutdown() {
	s.clock.Stop()
}

// advanceEpsilon absorbs the accumulated error of repeated float64
// tick additions so the end-of-timeline comparison does not run one
// tick long. It must stay well under any configurable tick duration.
const advanceEpsilon = 1e-9

// advance is the clock tick callback. It returns false when the tick
// would reach or pass the end of the timeline, resetting the playhead
// first so the auto-stop behaves like an implicit Stop.
func (s *Session) advance(step float64) bool {
	s.mu.Lock()
	total := s.model.TotalDuration()
	next := s.model.CurrentTime() + step
	if total <= 0 || next >= total-advanceEpsilon {
		s.model.SetCurrentTime(0)
		s.mu.Unlock()
		s.emit(EventPlayheadMoved, map[string]float64{"current_time": 0})
		return false
	}
	applied := s.model.SetCurrentTime(next)
	s.mu.Unlock()
	s.emit(EventPlayheadMoved, map[string]float64{"current_time": applied})
	return true
}

func (s *Session) publishPlayback() {
	s.publishPlaybackStatus()
}

func (s *Session) publishPlaybackStatus() PlaybackStatus {
	st := s.Playback()
	s.emit(EventPlaybackChanged, st)
	return st
}
