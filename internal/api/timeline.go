package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetTimeline handles GET /api/timeline: the full snapshot plus the
// pixel mapping constants the ruler and track views draw with.
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	geom := h.session.Geometry()
	writeJSON(w, http.StatusOK, map[string]any{
		"timeline":          h.session.Snapshot(),
		"pixels_per_second": geom.PixelsPerSecond,
		"gutter_width":      geom.GutterWidth,
	})
}

// AddClip handles POST /api/timeline/clips.
func (h *Handler) AddClip(w http.ResponseWriter, r *http.Request) {
	var req AddClipRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}
	clip, err := h.session.AddClip(req.MediaID, *req.TrackIndex, req.StartTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clip)
}

// MoveClip handles PATCH /api/timeline/clips/{id}.
func (h *Handler) MoveClip(w http.ResponseWriter, r *http.Request) {
	var req MoveClipRequest
	if !readJSON(w, r, &req) {
		return
	}
	clip, err := h.session.MoveClip(chi.URLParam(r, "id"), req.StartTime)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clip)
}

// DeleteClip handles DELETE /api/timeline/clips/{id}. Unknown ids
// succeed; deletion is a silent no-op in that case.
func (h *Handler) DeleteClip(w http.ResponseWriter, r *http.Request) {
	h.session.DeleteClip(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// SelectClip handles POST /api/timeline/clips/{id}/select.
func (h *Handler) SelectClip(w http.ResponseWriter, r *http.Request) {
	props, err := h.session.SelectClip(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// GetSelection handles GET /api/timeline/selection (the property panel).
func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	props, ok := h.session.Selection()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("nothing selected"))
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// ClearSelection handles DELETE /api/timeline/selection.
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.session.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}
