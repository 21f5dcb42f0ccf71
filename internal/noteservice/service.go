// Package noteservice answers one-shot calendar queries for the HTTP API
// and the MCP server. Each call computes from a fresh navigation state; no
// view state is kept between calls.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/events"
	"github.com/starford/foliocal/internal/icsexport"
	"github.com/starford/foliocal/internal/preview"
	"github.com/starford/foliocal/internal/view"
)

// Backend is the note store the service reads from.
type Backend interface {
	view.Host
	Folders(ctx context.Context) ([]string, error)
}

// Query selects a month and scope. A nil Folder means the configured
// source folder.
type Query struct {
	Month  calendar.Month
	Folder *string
	Tags   []string
}

// DayNote is the result of a create-or-open.
type DayNote struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
}

// Service coordinates the note backend, the opener and the settings.
type Service struct {
	backend  Backend
	opener   view.Opener
	settings view.SettingsSource
	logger   *slog.Logger
	clock    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.clock = now }
}

// NewService creates a new calendar service.
func NewService(backend Backend, opener view.Opener, settings view.SettingsSource, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		opener:   opener,
		settings: settings,
		logger:   slog.Default(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current day.
func (s *Service) Today() calendar.Day {
	return calendar.DayOf(s.clock())
}

// Settings returns the current settings.
func (s *Service) Settings() view.Settings {
	return s.settings.Settings()
}

func (s *Service) folder(f *string) string {
	if f != nil {
		return *f
	}
	return s.Settings().SourceFolder
}

// Month computes the snapshot for q. A zero month means the current one.
func (s *Service) Month(ctx context.Context, q Query) (view.Snapshot, error) {
	records, err := s.backend.ListNotes(ctx)
	if err != nil {
		return view.Snapshot{}, fmt.Errorf("noteservice: list notes: %w", err)
	}
	today := s.Today()
	m := q.Month
	if m.Year == 0 {
		m = today.MonthOf()
	}
	st := view.NavigationState{
		Month:  m,
		Folder: s.folder(q.Folder),
		Tags:   events.NewTagSet(q.Tags...),
	}
	return view.Compute(records, s.Settings(), st, today), nil
}

// Tags lists every tag in folder, ignoring any tag filter.
func (s *Service) Tags(ctx context.Context, folder *string) ([]string, error) {
	evs, err := s.Events(ctx, folder, nil)
	if err != nil {
		return nil, err
	}
	return events.AllTags(evs), nil
}

// Events returns the events of folder that carry any of tags, in note
// path order.
func (s *Service) Events(ctx context.Context, folder *string, tags []string) ([]events.Event, error) {
	records, err := s.backend.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("noteservice: list notes: %w", err)
	}
	set := s.Settings()
	all := events.Extract(records, events.Options{
		ScopeFolder:       s.folder(folder),
		DateField:         set.DateField,
		DisplayProperties: set.DisplayProperties,
	})
	return events.FilterByTags(all, events.NewTagSet(tags...)), nil
}

// OpenDay opens the note for d in folder, creating it first when missing.
func (s *Service) OpenDay(ctx context.Context, d calendar.Day, folder *string) (DayNote, error) {
	c := view.NewController(s.backend, s.opener, s.settings,
		view.WithLogger(s.logger), view.WithClock(s.clock))
	defer c.Close()
	c.SetFolder(s.folder(folder))

	path, created, err := c.CreateOrOpen(ctx, d)
	if err != nil {
		return DayNote{Path: path, Created: created}, fmt.Errorf("noteservice: open day %s: %w", d, err)
	}
	if created {
		s.logger.Info("noteservice: day note created", slog.String("path", path))
	}
	return DayNote{Path: path, Created: created}, nil
}

// Open hands an existing note to the opener. Missing notes are ignored.
func (s *Service) Open(ctx context.Context, path string) error {
	c := view.NewController(s.backend, s.opener, s.settings,
		view.WithLogger(s.logger), view.WithClock(s.clock))
	defer c.Close()
	return c.OpenNote(ctx, path)
}

// Read returns the text of the note at path.
func (s *Service) Read(ctx context.Context, path string) (string, error) {
	return s.backend.Read(ctx, path)
}

// Preview loads the hover preview for path.
func (s *Service) Preview(ctx context.Context, path string) view.Preview {
	return view.LoadPreview(ctx, s.backend, path)
}

// PlacePreview positions a preview of size next to trigger.
func (s *Service) PlacePreview(trigger preview.Rect, size, viewport preview.Size) preview.Point {
	return preview.Place(trigger, size, viewport)
}

// Folders lists the vault root and its folders.
func (s *Service) Folders(ctx context.Context) ([]string, error) {
	return s.backend.Folders(ctx)
}

// ICS renders the events of folder carrying any of tags as iCalendar.
func (s *Service) ICS(ctx context.Context, folder *string, tags []string) (string, error) {
	evs, err := s.Events(ctx, folder, tags)
	if err != nil {
		return "", err
	}
	return icsexport.Serialize(evs, s.clock()), nil
}
