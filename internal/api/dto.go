package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rosenlund/cutline/internal/export"
)

// AddClipRequest is the request body for placing a clip directly.
type AddClipRequest struct {
	MediaID    string  `json:"media_id" example:"4f0c..." validate:"required"`
	TrackIndex *int    `json:"track_index" example:"0" validate:"required"`
	StartTime  float64 `json:"start_time" example:"2.5"`
}

// Validate checks required fields. Track bounds are enforced by the
// timeline model, not here.
func (r AddClipRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MediaID, validation.Required),
		validation.Field(&r.TrackIndex, validation.NotNil),
	)
}

// MoveClipRequest is the request body for repositioning a clip.
type MoveClipRequest struct {
	StartTime float64 `json:"start_time" example:"4.0"`
}

// Drag kinds accepted by DragStartRequest.
const (
	DragKindPlace = "place"
	DragKindMove  = "move"
)

// DragStartRequest begins a pointer drag. A place drag names a media
// item; a move drag names a clip and the pointer's starting x.
type DragStartRequest struct {
	Kind    string  `json:"kind" example:"place" validate:"required"`
	MediaID string  `json:"media_id,omitempty"`
	ClipID  string  `json:"clip_id,omitempty"`
	X       float64 `json:"x,omitempty"`
}

// Validate checks the drag kind and its required reference.
func (r DragStartRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required, validation.In(DragKindPlace, DragKindMove)),
		validation.Field(&r.MediaID, validation.Required.When(r.Kind == DragKindPlace)),
		validation.Field(&r.ClipID, validation.Required.When(r.Kind == DragKindMove)),
	)
}

// DragMoveRequest is a pointer-move sample during an active drag.
type DragMoveRequest struct {
	X float64 `json:"x"`
}

// DragDropRequest finishes a drag. TrackIndex is the track under the
// release point; null means the pointer was not over any track.
type DragDropRequest struct {
	X          float64 `json:"x"`
	TrackIndex *int    `json:"track_index"`
}

// KeyRequest carries one keyboard event.
type KeyRequest struct {
	Key string `json:"key" example:"Space" validate:"required"`
}

// Validate requires a key name.
func (r KeyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Key, validation.Required),
	)
}

// RulerRequest is a click on the time ruler.
type RulerRequest struct {
	X float64 `json:"x"`
}

// SeekRequest moves the playhead to an absolute time.
type SeekRequest struct {
	Time float64 `json:"time"`
}

// ExportRequest is the export confirmation tuple.
type ExportRequest = export.Request

// DroppedResponse reports a drag drop outcome.
type DroppedResponse struct {
	Placed bool `json:"placed"`
	Clip   any  `json:"clip,omitempty"`
}

// PlayheadResponse reports an applied playhead position.
type PlayheadResponse struct {
	CurrentTime float64 `json:"current_time"`
}

// KeyResponse reports whether a key was bound to an action.
type KeyResponse struct {
	Handled bool `json:"handled"`
}
