package editor

import (
	"errors"
	"testing"

	"github.com/rosenlund/cutline/internal/apperr"
	"github.com/rosenlund/cutline/internal/models"
)

func intPtr(i int) *int { return &i }

func TestPlacementDragScenario(t *testing.T) {
	s, catalog := testSession(t, nil)
	// Duration still unresolved at placement time.
	item := seedMedia(t, catalog, "raw.mp4", models.MediaVideo, 0)

	if err := s.StartPlaceDrag(item.ID); err != nil {
		t.Fatalf("StartPlaceDrag: %v", err)
	}
	if err := s.DragMove(180); err != nil {
		t.Fatalf("DragMove: %v", err)
	}
	clip, placed, err := s.DropDrag(250, intPtr(0))
	if err != nil {
		t.Fatalf("DropDrag: %v", err)
	}
	if !placed {
		t.Fatal("drop over a track did not place a clip")
	}
	if clip.StartTime != 2.0 || clip.DurationSeconds != 5 {
		t.Errorf("clip start=%v dur=%v, want 2.0 and 5", clip.StartTime, clip.DurationSeconds)
	}
	if s.Dragging() {
		t.Error("drag still active after drop")
	}
}

func TestPlacementDragAbandonedOffTrack(t *testing.T) {
	s, catalog := testSession(t, nil)
	item := seedMedia(t, catalog, "raw.mp4", models.MediaVideo, 3)

	if err := s.StartPlaceDrag(item.ID); err != nil {
		t.Fatal(err)
	}
	_, placed, err := s.DropDrag(400, nil)
	if err != nil {
		t.Fatalf("DropDrag: %v", err)
	}
	if placed {
		t.Error("drop outside any track placed a clip")
	}
	if got := len(s.Snapshot().Clips); got != 0 {
		t.Errorf("clips = %d, want 0", got)
	}
	if s.Dragging() {
		t.Error("drag still active after abandoned drop")
	}
}

func TestPlacementDragInvalidTrackRejected(t *testing.T) {
	s, catalog := testSession(t, nil)
	item := seedMedia(t, catalog, "raw.mp4", models.MediaVideo, 3)

	if err := s.StartPlaceDrag(item.ID); err != nil {
		t.Fatal(err)
	}
	_, _, err := s.DropDrag(250, intPtr(7))
	if !errors.Is(err, apperr.ErrInvalidTrack) {
		t.Errorf("err = %v, want ErrInvalidTrack", err)
	}
	// The drag is spent either way.
	if s.Dragging() {
		t.Error("drag still active after rejected drop")
	}
}

func TestPlacementDragUnknownMedia(t *testing.T) {
	s, _ := testSession(t, nil)
	if err := s.StartPlaceDrag("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSingleActiveDrag(t *testing.T) {
	s, catalog := testSession(t, nil)
	item := seedMedia(t, catalog, "raw.mp4", models.MediaVideo, 3)
	clip, err := s.AddClip(item.ID, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.StartPlaceDrag(item.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.StartPlaceDrag(item.ID); !errors.Is(err, apperr.ErrDragActive) {
		t.Errorf("second place drag: err = %v, want ErrDragActive", err)
	}
	if err := s.StartMoveDrag(clip.ID, 200); !errors.Is(err, apperr.ErrDragActive) {
		t.Errorf("move drag while placing: err = %v, want ErrDragActive", err)
	}

	s.CancelDrag()
	if err := s.StartMoveDrag(clip.ID, 200); err != nil {
		t.Errorf("drag after cancel: %v", err)
	}
}

func TestMoveDragSelectsClip(t *testing.T) {
	s, catalog := testSession(t, nil)
	item := seedMedia(t, catalog, "raw.mp4", models.MediaVideo, 3)
	clip, _ := s.AddClip(item.ID, 0, 2)

	if err := s.StartMoveDrag(clip.ID, 300); err != nil {
		t.Fatal(err)
	}
	props, ok := s.Selection()
	if !ok || props.ClipID != clip.ID {
		t.Errorf("selection = %+v, %v; want clip %s", props, ok, clip.ID)
	}
}

func TestMoveDragLiveUpdates(t *testing.T) {
	s, catalog := testSession(t, nil)
	item := seedMedia(t, catalog, "raw.mp4", models.MediaVideo, 3)
	clip, _ := s.AddClip(item.ID, 0, 2) // left edge at 150 + 2*50 = 250 px

	if err := s.StartMoveDrag(clip.ID, 300); err != nil {
		t.Fatal(err)
	}

	// +50 px is +1 s, applied before any drop.
	if err := s.DragMove(350); err != nil {
		t.Fatal(err)
	}
	moved, _ := findClip(s, clip.ID)
	if moved.StartTime != 3.0 {
		t.Errorf("live start = %v, want 3.0", moved.StartTime)
	}

	// Dragging far left clamps at zero, never negative.
	if err := s.DragMove(0); err != nil {
		t.Fatal(err)
	}
	moved, _ = findClip(s, clip.ID)
	if moved.StartTime != 0 {
		t.Errorf("clamped start = %v, want 0", moved.StartTime)
	}

	final, placed, err := s.DropDrag(400, nil)
	if err != nil || !placed {
		t.Fatalf("DropDrag: %v placed=%v", err, placed)
	}
	if final.StartTime != 4.0 {
		t.Errorf("final start = %v, want 4.0", final.StartTime)
	}
	if s.Dragging() {
		t.Error("drag still active after drop")
	}
}

func TestCancelMoveDragReverts(t *testing.T) {
	s, catalog := testSession(t, nil)
	item := seedMedia(t, catalog, "raw.mp4", models.MediaVideo, 3)
	clip, _ := s.AddClip(item.ID, 1, 2)

	if err := s.StartMoveDrag(clip.ID, 300); err != nil {
		t.Fatal(err)
	}
	if err := s.DragMove(500); err != nil {
		t.Fatal(err)
	}
	s.CancelDrag()

	got, _ := findClip(s, clip.ID)
	if got.StartTime != 2 {
		t.Errorf("start after cancel = %v, want 2", got.StartTime)
	}
}

func TestDragMoveWithoutActiveDrag(t *testing.T) {
	s, _ := testSession(t, nil)
	if err := s.DragMove(100); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("DragMove: err = %v, want ErrNotFound", err)
	}
	if _, _, err := s.DropDrag(100, nil); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("DropDrag: err = %v, want ErrNotFound", err)
	}
	// Cancel with no drag is harmless.
	s.CancelDrag()
}

func findClip(s *Session, id string) (models.Clip, bool) {
	for _, c := range s.Snapshot().Clips {
		if c.ID == id {
			return c, true
		}
	}
	return models.Clip{}, false
}
