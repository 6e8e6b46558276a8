package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosenlund/cutline/internal/editor"
	"github.com/rosenlund/cutline/internal/export"
	"github.com/rosenlund/cutline/internal/medialib"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(session *editor.Session, lib *medialib.Library, exportSvc *export.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(session, lib, exportSvc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Media library.
	r.Get("/media", h.ListMedia)
	r.Post("/media", h.UploadMedia)
	r.Delete("/media", h.ClearMedia)
	r.Get("/media/{id}", h.GetMedia)

	// Timeline model.
	r.Get("/timeline", h.GetTimeline)
	r.Post("/timeline/clips", h.AddClip)
	r.Patch("/timeline/clips/{id}", h.MoveClip)
	r.Delete("/timeline/clips/{id}", h.DeleteClip)
	r.Post("/timeline/clips/{id}/select", h.SelectClip)
	r.Get("/timeline/selection", h.GetSelection)
	r.Delete("/timeline/selection", h.ClearSelection)

	// Playback clock.
	r.Get("/playback", h.GetPlayback)
	r.Post("/playback/play", h.Play)
	r.Post("/playback/pause", h.Pause)
	r.Post("/playback/stop", h.StopPlayback)
	r.Post("/playback/seek", h.Seek)

	// Pointer and keyboard surface.
	r.Post("/input/drag/start", h.DragStart)
	r.Post("/input/drag/move", h.DragMove)
	r.Post("/input/drag/drop", h.DragDrop)
	r.Post("/input/drag/cancel", h.DragCancel)
	r.Post("/input/key", h.Key)
	r.Post("/input/ruler", h.Ruler)

	// Export.
	r.Post("/export", h.Export)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
