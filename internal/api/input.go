package api

import (
	"net/http"
)

// DragStart handles POST /api/input/drag/start.
func (h *Handler) DragStart(w http.ResponseWriter, r *http.Request) {
	var req DragStartRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	var err error
	if req.Kind == DragKindPlace {
		err = h.session.StartPlaceDrag(req.MediaID)
	} else {
		err = h.session.StartMoveDrag(req.ClipID, req.X)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DragMove handles POST /api/input/drag/move. Move drags update the
// clip position live; place drags only track the pointer.
func (h *Handler) DragMove(w http.ResponseWriter, r *http.Request) {
	var req DragMoveRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := h.session.DragMove(req.X); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DragDrop handles POST /api/input/drag/drop. A null track index means
// the release point was not over any track; the placement is abandoned
// without error.
func (h *Handler) DragDrop(w http.ResponseWriter, r *http.Request) {
	var req DragDropRequest
	if !readJSON(w, r, &req) {
		return
	}
	clip, placed, err := h.session.DropDrag(req.X, req.TrackIndex)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := DroppedResponse{Placed: placed}
	if placed {
		resp.Clip = clip
	}
	writeJSON(w, http.StatusOK, resp)
}

// DragCancel handles POST /api/input/drag/cancel.
func (h *Handler) DragCancel(w http.ResponseWriter, r *http.Request) {
	h.session.CancelDrag()
	w.WriteHeader(http.StatusNoContent)
}

// Key handles POST /api/input/key.
func (h *Handler) Key(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, KeyResponse{Handled: h.session.HandleKey(req.Key)})
}

// Ruler handles POST /api/input/ruler: a click on the time ruler seeks
// the playhead to the time under the pointer.
func (h *Handler) Ruler(w http.ResponseWriter, r *http.Request) {
	var req RulerRequest
	if !readJSON(w, r, &req) {
		return
	}
	applied := h.session.RulerClick(req.X)
	writeJSON(w, http.StatusOK, PlayheadResponse{CurrentTime: applied})
}
