package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/foliocal/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *noteservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Month view.
	r.Get("/calendar", h.GetMonth)
	r.Get("/calendar/tags", h.ListTags)
	r.Post("/calendar/days/{date}", h.OpenDay)
	r.Get("/calendar.ics", h.ExportICS)

	// Notes.
	r.Post("/notes/open", h.OpenNote)
	r.Get("/notes/preview/*", h.PreviewNote)
	r.Post("/preview/position", h.PlacePreview)

	r.Get("/folders", h.ListFolders)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
