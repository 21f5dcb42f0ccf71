// Package view holds the state of one open calendar and recomputes the
// month grid whenever navigation, settings or the notes change.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/foliocal/internal/apperr"
	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/events"
	"github.com/starford/foliocal/internal/models"
	"github.com/starford/foliocal/internal/preview"
)

// Controller owns the NavigationState of a single calendar view. All
// methods are safe for concurrent use; change callbacks run outside the
// lock.
type Controller struct {
	host     Host
	opener   Opener
	settings SettingsSource
	logger   *slog.Logger
	clock    func() time.Time

	onChange  func(Snapshot)
	onPreview func(Preview)

	refresh  *Debouncer
	hover    *Debouncer
	debounce time.Duration

	mu         sync.Mutex
	closed     bool
	cur        Settings
	lastSource string
	state      NavigationState
	records    []models.NoteRecord
	snap       Snapshot
	preview    Preview
	previewGen uint64
	// listSeq numbers note listings; only a listing newer than listApplied
	// may replace records.
	listSeq     uint64
	listApplied uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.clock = now }
}

// WithDebounce sets the quiet period before a notified refresh runs.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithOnChange registers a callback receiving every new snapshot.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithOnPreview registers a callback receiving preview updates.
func WithOnPreview(fn func(Preview)) Option {
	return func(c *Controller) { c.onPreview = fn }
}

// NewController returns a controller showing the current month of the
// configured source folder. Call Refresh to load notes.
func NewController(host Host, opener Opener, settings SettingsSource, opts ...Option) *Controller {
	c := &Controller{
		host:     host,
		opener:   opener,
		settings: settings,
		logger:   slog.Default(),
		clock:    time.Now,
		debounce: DefaultRefreshDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.refresh = NewDebouncer(c.debounce)
	c.hover = NewDebouncer(DefaultHoverPreviewDelay)

	c.cur = settings.Settings().withDefaults()
	c.lastSource = c.cur.SourceFolder
	c.state = NavigationState{
		Month:  c.today().MonthOf(),
		Folder: c.cur.SourceFolder,
		Tags:   events.NewTagSet(),
	}
	c.recomputeLocked()
	return c
}

func (c *Controller) today() calendar.Day {
	return calendar.DayOf(c.clock())
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// State returns a copy of the navigation state.
func (c *Controller) State() NavigationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	st.Tags = st.Tags.Clone()
	return st
}

// Settings returns the settings applied by the last refresh.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

// Refresh re-reads settings and notes and recomputes the view. On a listing
// error the previous notes are kept, and a listing that finishes after a
// newer one is discarded.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.listSeq++
	seq := c.listSeq
	c.mu.Unlock()

	records, err := c.host.ListNotes(ctx)
	s := c.settings.Settings().withDefaults()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.cur = s
	if s.SourceFolder != c.lastSource {
		c.lastSource = s.SourceFolder
		c.state.Folder = s.SourceFolder
	}
	if err == nil && seq > c.listApplied {
		c.records = records
		c.listApplied = seq
	}
	snap := c.recomputeLocked()
	c.mu.Unlock()

	c.emit(snap)
	if err != nil {
		return fmt.Errorf("view: list notes: %w", err)
	}
	return nil
}

// Notify reports an external change. Bursts are coalesced into a single
// refresh after the debounce window.
func (c *Controller) Notify(kind string) {
	c.logger.Debug("view: change", slog.String("kind", kind))
	c.refresh.Schedule(func() {
		if err := c.Refresh(context.Background()); err != nil {
			c.logger.Warn("view: refresh failed", slog.String("error", err.Error()))
		}
	})
}

// PreviousMonth moves back one month.
func (c *Controller) PreviousMonth() Snapshot {
	return c.update(func(st *NavigationState) { st.Month = st.Month.Prev() })
}

// NextMonth moves forward one month.
func (c *Controller) NextMonth() Snapshot {
	return c.update(func(st *NavigationState) { st.Month = st.Month.Next() })
}

// GoToday shows the current month.
func (c *Controller) GoToday() Snapshot {
	today := c.today()
	return c.update(func(st *NavigationState) { st.Month = today.MonthOf() })
}

// SetMonthYear jumps to month of year, limited to the picker range.
func (c *Controller) SetMonthYear(year int, month time.Month) Snapshot {
	m := calendar.NewMonth(year, month).ClampPicker()
	return c.update(func(st *NavigationState) { st.Month = m })
}

// SetFolder scopes the view to folder for this session only.
func (c *Controller) SetFolder(folder string) Snapshot {
	return c.update(func(st *NavigationState) { st.Folder = folder })
}

// ToggleTag adds or removes tag from the active filter.
func (c *Controller) ToggleTag(tag string) Snapshot {
	return c.update(func(st *NavigationState) { st.Tags.Toggle(tag) })
}

// ClearTags removes every tag filter.
func (c *Controller) ClearTags() Snapshot {
	return c.update(func(st *NavigationState) { st.Tags = events.NewTagSet() })
}

func (c *Controller) update(fn func(*NavigationState)) Snapshot {
	c.mu.Lock()
	if c.closed {
		snap := c.snap
		c.mu.Unlock()
		return snap
	}
	fn(&c.state)
	snap := c.recomputeLocked()
	c.mu.Unlock()

	c.emit(snap)
	return snap
}

func (c *Controller) recomputeLocked() Snapshot {
	c.snap = Compute(c.records, c.cur, c.state, c.today())
	return c.snap
}

func (c *Controller) emit(snap Snapshot) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}

// CreateOrOpen opens the day note for d in the active folder, creating it
// first when missing. created reports whether a file was written.
func (c *Controller) CreateOrOpen(ctx context.Context, d calendar.Day) (path string, created bool, err error) {
	c.mu.Lock()
	folder, field := c.state.Folder, c.cur.DateField
	c.mu.Unlock()

	path = DayNotePath(folder, d)
	exists, err := c.host.Exists(ctx, path)
	if err != nil {
		return "", false, fmt.Errorf("view: check %s: %w", path, err)
	}
	if !exists {
		_, err := c.host.Create(ctx, path, DayNoteContent(field, d))
		switch {
		case errors.Is(err, apperr.ErrAlreadyExists):
			c.logger.Debug("view: day note appeared concurrently", slog.String("path", path))
		case err != nil:
			return "", false, fmt.Errorf("view: create %s: %w", path, err)
		default:
			created = true
		}
	}

	if created {
		if err := c.Refresh(ctx); err != nil {
			c.logger.Warn("view: refresh after create failed", slog.String("error", err.Error()))
		}
	}
	if err := c.opener.Open(ctx, path); err != nil {
		return path, created, fmt.Errorf("view: open %s: %w", path, err)
	}
	return path, created, nil
}

// OpenNote opens path in the editor. A path that no longer resolves to a
// note is ignored.
func (c *Controller) OpenNote(ctx context.Context, path string) error {
	exists, err := c.host.Exists(ctx, path)
	if err != nil || !exists {
		c.logger.Debug("view: open skipped", slog.String("path", path))
		return nil
	}
	if err := c.opener.Open(ctx, path); err != nil {
		return fmt.Errorf("view: open %s: %w", path, err)
	}
	return nil
}

// Close tears the view down. Pending refreshes and preview loads are
// discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.previewGen++
	c.mu.Unlock()

	c.refresh.Stop()
	c.hover.Stop()
}

// RequestPreview arms the hover preview for path, anchored at trigger. It
// appears after the configured delay unless cancelled first.
func (c *Controller) RequestPreview(path string, trigger preview.Rect) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.previewGen++
	gen := c.previewGen
	delay := c.cur.HoverPreviewDelay
	c.mu.Unlock()

	c.hover.ScheduleAfter(delay, func() { c.showPreview(gen, path, trigger) })
}

// ClosePreview cancels a pending preview and hides the visible one.
func (c *Controller) ClosePreview() {
	c.hover.Cancel()

	c.mu.Lock()
	c.previewGen++
	wasOpen := c.preview.Status != ""
	c.preview = Preview{}
	closed := c.closed
	c.mu.Unlock()

	if wasOpen && !closed && c.onPreview != nil {
		c.onPreview(Preview{})
	}
}

// Preview returns the preview currently shown. ok is false when none is.
func (c *Controller) Preview() (p Preview, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preview, c.preview.Status != ""
}

func (c *Controller) showPreview(gen uint64, path string, trigger preview.Rect) {
	loading := Preview{
		Path:    path,
		Title:   events.BaseName(path),
		Status:  PreviewLoading,
		Trigger: trigger,
	}
	if !c.setPreview(gen, loading) {
		return
	}

	go func() {
		p := LoadPreview(context.Background(), c.host, path)
		p.Trigger = trigger
		if p.Status == PreviewFailed {
			c.logger.Debug("view: preview load failed", slog.String("path", path))
		}
		c.setPreview(gen, p)
	}()
}

// setPreview stores p unless the request is stale or the view closed.
func (c *Controller) setPreview(gen uint64, p Preview) bool {
	c.mu.Lock()
	if c.closed || c.previewGen != gen {
		c.mu.Unlock()
		return false
	}
	c.preview = p
	c.mu.Unlock()

	if c.onPreview != nil {
		c.onPreview(p)
	}
	return true
}
