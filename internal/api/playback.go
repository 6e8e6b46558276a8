package api

import (
	"net/http"
)

// GetPlayback handles GET /api/playback.
func (h *Handler) GetPlayback(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Playback())
}

// Play handles POST /api/playback/play. Playing while already playing
// is a no-op.
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Play())
}

// Pause handles POST /api/playback/pause.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Pause())
}

// StopPlayback handles POST /api/playback/stop.
func (h *Handler) StopPlayback(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Stop())
}

// Seek handles POST /api/playback/seek. The applied position is
// clamped to the timeline bounds.
func (h *Handler) Seek(w http.ResponseWriter, r *http.Request) {
	var req SeekRequest
	if !readJSON(w, r, &req) {
		return
	}
	applied := h.session.Seek(req.Time)
	writeJSON(w, http.StatusOK, PlayheadResponse{CurrentTime: applied})
}
