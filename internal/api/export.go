package api

import (
	"errors"
	"net/http"

	"github.com/rosenlund/cutline/internal/export"
)

// Export handles POST /api/export: validates the format/quality tuple,
// builds the encoder plan from the current timeline, and writes the job
// manifest.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if !readJSON(w, r, &req) {
		return
	}
	res, err := h.export.Export(h.session.Snapshot(), req)
	if err != nil {
		if errors.Is(err, export.ErrEmptyTimeline) {
			writeJSON(w, http.StatusConflict, errorBody("timeline is empty"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
