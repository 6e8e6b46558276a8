package timeline

import (
	"errors"
	"math"
	"testing"

	"github.com/rosenlund/cutline/internal/apperr"
	"github.com/rosenlund/cutline/internal/models"
)

func testTracks() []models.Track {
	return []models.Track{
		{Name: "Video 1", Kind: models.TrackVideo},
		{Name: "Video 2", Kind: models.TrackVideo},
		{Name: "Audio 1", Kind: models.TrackAudio},
	}
}

func testMedia(dur float64) models.MediaItem {
	return models.MediaItem{ID: "m1", Name: "clip.mp4", Kind: models.MediaVideo, DurationSeconds: dur}
}

// wantDuration checks the derived-duration invariant directly against the clip set.
func wantDuration(t *testing.T, m *Model) {
	t.Helper()
	var max float64
	for _, c := range m.Clips() {
		if end := c.EndTime(); end > max {
			max = end
		}
	}
	if got := m.TotalDuration(); math.Abs(got-max) > 1e-9 {
		t.Fatalf("TotalDuration = %v, want %v", got, max)
	}
}

func TestAddClipSnapshotsMedia(t *testing.T) {
	m := NewModel(testTracks(), 5)
	clip, err := m.AddClip(testMedia(8), 1, 3)
	if err != nil {
		t.Fatalf("AddClip: %v", err)
	}
	if clip.DurationSeconds != 8 || clip.TrackIndex != 1 || clip.StartTime != 3 {
		t.Errorf("clip = %+v", clip)
	}
	if clip.Name != "clip.mp4" || clip.Kind != models.MediaVideo {
		t.Errorf("denormalized fields = %q/%q", clip.Name, clip.Kind)
	}
	wantDuration(t, m)
}

func TestAddClipUnresolvedDurationFallback(t *testing.T) {
	m := NewModel(testTracks(), 5)
	clip, err := m.AddClip(testMedia(0), 0, 2)
	if err != nil {
		t.Fatalf("AddClip: %v", err)
	}
	if clip.DurationSeconds != 5 {
		t.Errorf("fallback duration = %v, want 5", clip.DurationSeconds)
	}
	if m.TotalDuration() != 7 {
		t.Errorf("TotalDuration = %v, want 7", m.TotalDuration())
	}
}

func TestAddClipRejectsInvalidTrack(t *testing.T) {
	m := NewModel(testTracks(), 5)
	for _, idx := range []int{-1, 3, 99} {
		if _, err := m.AddClip(testMedia(5), idx, 0); !errors.Is(err, apperr.ErrInvalidTrack) {
			t.Errorf("AddClip(track=%d) err = %v, want ErrInvalidTrack", idx, err)
		}
	}
	if len(m.Clips()) != 0 {
		t.Errorf("rejected adds must not insert clips")
	}
}

func TestDurationInvariantAcrossMutations(t *testing.T) {
	m := NewModel(testTracks(), 5)
	a, _ := m.AddClip(testMedia(4), 0, 0)
	wantDuration(t, m)
	b, _ := m.AddClip(testMedia(6), 2, 10)
	wantDuration(t, m)
	if m.TotalDuration() != 16 {
		t.Fatalf("TotalDuration = %v, want 16", m.TotalDuration())
	}
	_ = m.MoveClip(b.ID, 1)
	wantDuration(t, m)
	m.DeleteClip(a.ID)
	wantDuration(t, m)
	m.DeleteClip(b.ID)
	wantDuration(t, m)
	if m.TotalDuration() != 0 {
		t.Errorf("empty timeline duration = %v, want 0", m.TotalDuration())
	}
}

func TestMoveClipClampsNegative(t *testing.T) {
	m := NewModel(testTracks(), 5)
	clip, _ := m.AddClip(testMedia(5), 0, 4)
	if err := m.MoveClip(clip.ID, -123.4); err != nil {
		t.Fatalf("MoveClip: %v", err)
	}
	moved, _ := m.Clip(clip.ID)
	if moved.StartTime != 0 {
		t.Errorf("StartTime = %v, want 0", moved.StartTime)
	}
}

func TestMoveClipUnknownID(t *testing.T) {
	m := NewModel(testTracks(), 5)
	if err := m.MoveClip("nope", 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOverlappingClipsRetained(t *testing.T) {
	m := NewModel(testTracks(), 5)
	a, _ := m.AddClip(testMedia(5), 0, 0)
	b, _ := m.AddClip(testMedia(5), 0, 2)
	if len(m.Clips()) != 2 {
		t.Fatalf("clips = %d, want 2", len(m.Clips()))
	}
	ca, _ := m.Clip(a.ID)
	cb, _ := m.Clip(b.ID)
	if ca.StartTime != 0 || cb.StartTime != 2 {
		t.Errorf("no auto-shift expected: %v / %v", ca.StartTime, cb.StartTime)
	}
}

func TestDeleteClipSelectionSemantics(t *testing.T) {
	m := NewModel(testTracks(), 5)
	a, _ := m.AddClip(testMedia(5), 0, 0)
	b, _ := m.AddClip(testMedia(5), 0, 6)

	if err := m.Select(a.ID); err != nil {
		t.Fatalf("Select: %v", err)
	}
	// Deleting a non-selected clip leaves the selection alone.
	m.DeleteClip(b.ID)
	if m.SelectedClipID() != a.ID {
		t.Errorf("selection = %q, want %q", m.SelectedClipID(), a.ID)
	}
	// Deleting the selected clip clears it.
	m.DeleteClip(a.ID)
	if m.SelectedClipID() != "" {
		t.Errorf("selection = %q, want empty", m.SelectedClipID())
	}
	// Unknown id is a silent no-op.
	m.DeleteClip("ghost")
}

func TestSelectUnknownClip(t *testing.T) {
	m := NewModel(testTracks(), 5)
	if err := m.Select("ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetCurrentTimeClamps(t *testing.T) {
	m := NewModel(testTracks(), 5)
	_, _ = m.AddClip(testMedia(10), 0, 0)

	if got := m.SetCurrentTime(-1); got != 0 {
		t.Errorf("clamp low = %v", got)
	}
	if got := m.SetCurrentTime(25); got != 10 {
		t.Errorf("clamp high = %v", got)
	}
	if got := m.SetCurrentTime(4.5); got != 4.5 {
		t.Errorf("in range = %v", got)
	}
}

func TestPlayheadFollowsShrinkingTimeline(t *testing.T) {
	m := NewModel(testTracks(), 5)
	clip, _ := m.AddClip(testMedia(10), 0, 0)
	m.SetCurrentTime(9)
	m.DeleteClip(clip.ID)
	if m.CurrentTime() != 0 {
		t.Errorf("playhead = %v, want 0 after timeline emptied", m.CurrentTime())
	}
}
