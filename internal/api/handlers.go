package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/noteservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// notePath extracts the note path from the URL (everything after the
// route prefix). Supports encoded slashes (e.g. Journal%2F2024-03-15.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// folderParam returns the folder query parameter, or nil when absent so
// the configured source folder applies. An explicit empty value selects
// the vault root.
func folderParam(r *http.Request) *string {
	q := r.URL.Query()
	if !q.Has("folder") {
		return nil
	}
	f := q.Get("folder")
	return &f
}

// GetMonth handles GET /api/calendar.
//
//	@Summary		Get the month grid
//	@Tags			calendar
//	@Produce		json
//	@Param			month	query		string	false	"Month as YYYY-MM, defaults to the current month"
//	@Param			folder	query		string	false	"Scope folder, defaults to the configured source folder"
//	@Param			tag		query		[]string	false	"Show only events with any of these tags"
//	@Success		200		{object}	Snapshot
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendar [get]
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	q := noteservice.Query{Folder: folderParam(r), Tags: r.URL.Query()["tag"]}
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := calendar.ParseMonth(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("month must be YYYY-MM"))
			return
		}
		q.Month = m
	}
	snap, err := h.svc.Month(r.Context(), q)
	if err != nil {
		writeError(w, "month", err, slog.String("month", q.Month.String()))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ListTags handles GET /api/calendar/tags.
//
//	@Summary		List tags used by dated notes
//	@Tags			calendar
//	@Produce		json
//	@Param			folder	query		string	false	"Scope folder"
//	@Success		200		{object}	TagsResponse
//	@Security		BearerAuth
//	@Router			/calendar/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Tags(r.Context(), folderParam(r))
	if err != nil {
		writeError(w, "tags", err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: tags})
}

// OpenDay handles POST /api/calendar/days/{date}.
//
//	@Summary		Open the day note, creating it when missing
//	@Tags			calendar
//	@Produce		json
//	@Param			date	path		string	true	"Day as YYYY-MM-DD"
//	@Param			folder	query		string	false	"Folder for the note"
//	@Success		200		{object}	DayNote	"Existing note opened"
//	@Success		201		{object}	DayNote	"Note created and opened"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendar/days/{date} [post]
func (h *Handler) OpenDay(w http.ResponseWriter, r *http.Request) {
	d, err := calendar.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("date must be YYYY-MM-DD"))
		return
	}
	note, err := h.svc.OpenDay(r.Context(), d, folderParam(r))
	if err != nil {
		writeError(w, "open day", err, slog.String("date", d.String()))
		return
	}
	status := http.StatusOK
	if note.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, note)
}

// ExportICS handles GET /api/calendar.ics.
//
//	@Summary		Export dated notes as iCalendar
//	@Tags			calendar
//	@Produce		text/calendar
//	@Param			folder	query	string		false	"Scope folder"
//	@Param			tag		query	[]string	false	"Export only events with any of these tags"
//	@Success		200		{string}	string
//	@Security		BearerAuth
//	@Router			/calendar.ics [get]
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ICS(r.Context(), folderParam(r), r.URL.Query()["tag"])
	if err != nil {
		writeError(w, "ics export", err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="foliocal.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// OpenNote handles POST /api/notes/open.
//
//	@Summary		Open a note in connected editors
//	@Tags			notes
//	@Accept			json
//	@Param			body	body	OpenNoteRequest	true	"Note to open"
//	@Success		204		"Opened, or ignored when the note is gone"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/open [post]
func (h *Handler) OpenNote(w http.ResponseWriter, r *http.Request) {
	var req OpenNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if err := h.svc.Open(r.Context(), req.Path); err != nil {
		writeError(w, "open note", err, slog.String("path", req.Path))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewNote handles GET /api/notes/preview/*.
//
//	@Summary		Get the hover preview of a note
//	@Tags			notes
//	@Produce		json
//	@Param			path	path		string	true	"Note path"
//	@Success		200		{object}	Preview
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/preview/{path} [get]
func (h *Handler) PreviewNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Preview(r.Context(), path))
}

// PlacePreview handles POST /api/preview/position.
//
//	@Summary		Position a preview next to its trigger
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		PlacePreviewRequest	true	"Trigger, preview and viewport geometry"
//	@Success		200		{object}	preview.Point
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/preview/position [post]
func (h *Handler) PlacePreview(w http.ResponseWriter, r *http.Request) {
	var req PlacePreviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Viewport.Width <= 0 || req.Viewport.Height <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("viewport size is required"))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.PlacePreview(req.Trigger, req.Preview, req.Viewport))
}

// ListFolders handles GET /api/folders.
//
//	@Summary		List vault folders
//	@Tags			notes
//	@Produce		json
//	@Success		200	{object}	FoldersResponse
//	@Security		BearerAuth
//	@Router			/folders [get]
func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.svc.Folders(r.Context())
	if err != nil {
		writeError(w, "folders", err)
		return
	}
	writeJSON(w, http.StatusOK, FoldersResponse{Folders: folders})
}
