package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 500 << 20 // 500 MB

// ListMedia handles GET /api/media with an optional kind filter.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	items, err := h.lib.List(r.URL.Query().Get("kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

// GetMedia handles GET /api/media/{id}.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	item, err := h.lib.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UploadMedia handles POST /api/media (multipart/form-data, field "file").
// The item is returned immediately with duration 0; resolution happens in
// the background and is announced over SSE.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to read upload"))
		return
	}

	item, err := h.lib.ImportUpload(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("media uploaded",
		slog.String("id", item.ID),
		slog.String("name", item.Name),
		slog.String("kind", string(item.Kind)))
	writeJSON(w, http.StatusCreated, item)
}

// ClearMedia handles DELETE /api/media. Clearing the library is the only
// bulk item removal.
func (h *Handler) ClearMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.lib.Clear(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
