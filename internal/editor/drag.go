package editor

import (
	"github.com/rosenlund/cutline/internal/apperr"
	"github.com/rosenlund/cutline/internal/models"
)

type dragKind string

const (
	dragPlace dragKind = "place"
	dragMove  dragKind = "move"
)

// dragState is the captured pointer interaction. At most one exists at a
// time; it lives from StartPlaceDrag/StartMoveDrag until DropDrag or
// CancelDrag.
type dragState struct {
	kind    dragKind
	mediaID string

	clipID    string
	startX    float64
	startLeft float64
	origStart float64
}

// Dragging reports whether a drag is active.
func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag != nil
}

// StartPlaceDrag begins dragging a library item toward the tracks. The
// clip is only created on drop; there is no ghost preview in the model.
func (s *Session) StartPlaceDrag(mediaID string) error {
	if _, err := s.lib.Get(mediaID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag != nil {
		return apperr.ErrDragActive
	}
	s.drag = &dragState{kind: dragPlace, mediaID: mediaID}
	return nil
}

// StartMoveDrag begins repositioning an existing clip. The clip becomes
// the selection, and the pointer's starting x plus the clip's starting
// pixel offset are recorded so moves are relative.
func (s *Session) StartMoveDrag(clipID string, x float64) error {
	s.mu.Lock()
	clip, ok := s.model.Clip(clipID)
	if !ok {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	if s.drag != nil {
		s.mu.Unlock()
		return apperr.ErrDragActive
	}
	s.drag = &dragState{
		kind:      dragMove,
		clipID:    clipID,
		startX:    x,
		startLeft: s.geom.PixelFromTime(clip.StartTime),
		origStart: clip.StartTime,
	}
	_ = s.model.Select(clipID)
	props := s.propertiesLocked()
	s.mu.Unlock()
	s.emit(EventClipSelected, props)
	return nil
}

// DragMove handles a pointer move during an active drag. Move drags
// apply the new position to the model immediately; placement drags only
// track the pointer, so this is a no-op for them.
func (s *Session) DragMove(x float64) error {
	s.mu.Lock()
	d := s.drag
	if d == nil {
		s.mu.Unlock()
		return apperr.ErrNotFound
	}
	if d.kind != dragMove {
		s.mu.Unlock()
		return nil
	}
	newLeft := d.startLeft + (x - d.startX)
	if newLeft < 0 {
		newLeft = 0
	}
	err := s.model.MoveClip(d.clipID, s.geom.TimeFromPixel(newLeft))
	clip, _ := s.model.Clip(d.clipID)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.emit(EventClipMoved, clip)
	return nil
}

// DropDrag finishes the active drag at pointer x. For a placement drag,
// trackIndex identifies the track under the release point; nil means the
// release was not over any track and the placement is abandoned without
// error. A move drag is already committed live, so the drop just applies
// the final position and detaches. The returned bool reports whether a
// clip was placed or repositioned.
func (s *Session) DropDrag(x float64, trackIndex *int) (models.Clip, bool, error) {
	s.mu.Lock()
	d := s.drag
	if d == nil {
		s.mu.Unlock()
		return models.Clip{}, false, apperr.ErrNotFound
	}
	s.drag = nil
	s.mu.Unlock()

	switch d.kind {
	case dragPlace:
		if trackIndex == nil {
			return models.Clip{}, false, nil
		}
		clip, err := s.AddClip(d.mediaID, *trackIndex, s.geom.TimeFromPixel(x))
		if err != nil {
			return models.Clip{}, false, err
		}
		return clip, true, nil
	default:
		newLeft := d.startLeft + (x - d.startX)
		if newLeft < 0 {
			newLeft = 0
		}
		clip, err := s.MoveClip(d.clipID, s.geom.TimeFromPixel(newLeft))
		if err != nil {
			return models.Clip{}, false, err
		}
		return clip, true, nil
	}
}

// CancelDrag abandons the active drag. A move drag reverts the clip to
// its position at drag start.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	d := s.drag
	s.drag = nil
	var reverted models.Clip
	var moved bool
	if d != nil && d.kind == dragMove {
		if err := s.model.MoveClip(d.clipID, d.origStart); err == nil {
			reverted, moved = s.model.Clip(d.clipID)
		}
	}
	s.mu.Unlock()
	if moved {
		s.emit(EventClipMoved, reverted)
	}
}
