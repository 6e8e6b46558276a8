package api

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rosenlund/cutline/internal/apperr"
	"github.com/rosenlund/cutline/internal/editor"
	"github.com/rosenlund/cutline/internal/export"
	"github.com/rosenlund/cutline/internal/medialib"
)

// Handler holds API route handlers.
type Handler struct {
	session *editor.Session
	lib     *medialib.Library
	export  *export.Service
}

// NewHandler creates a new Handler.
func NewHandler(session *editor.Session, lib *medialib.Library, exportSvc *export.Service) *Handler {
	return &Handler{session: session, lib: lib, export: exportSvc}
}

// writeError maps domain errors onto HTTP statuses. Validation failures
// and rejected track indexes are client errors; everything unexpected is
// logged and reported as a 500.
func writeError(w http.ResponseWriter, err error) {
	var vErr validation.Errors
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrInvalidTrack):
		writeJSON(w, http.StatusBadRequest, errorBody("track index out of range"))
	case errors.Is(err, apperr.ErrDragActive):
		writeJSON(w, http.StatusConflict, errorBody("a drag is already active"))
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
