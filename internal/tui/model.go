// Package tui is the terminal calendar: a month grid over one
// view.Controller with pickers, hover previews and $EDITOR integration.
package tui

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/events"
	"github.com/starford/foliocal/internal/grid"
	"github.com/starford/foliocal/internal/view"
)

// Vault is the note store behind the calendar.
type Vault interface {
	view.Host
	Folders(ctx context.Context) ([]string, error)
}

type mode int

const (
	modeGrid mode = iota
	modeJump
	modeFolders
	modeTags
)

type (
	refreshedMsg struct{ err error }
	openedMsg    struct {
		path    string
		created bool
		err     error
	}
	foldersMsg struct {
		folders []string
		err     error
	}
	editorClosedMsg struct {
		path string
		err  error
	}
)

// Option configures the Model.
type Option func(*options)

type options struct {
	ctx      context.Context
	logger   *slog.Logger
	clock    func() time.Time
	debounce time.Duration
	root     string
	editor   string
}

// WithContext sets the context used for note operations.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithDebounce sets the refresh debounce window.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithVaultRoot sets the directory note paths are resolved against when
// launching the editor.
func WithVaultRoot(root string) Option {
	return func(o *options) { o.root = root }
}

// WithEditor sets the editor command. It defaults to $EDITOR, then vi.
func WithEditor(editor string) Option {
	return func(o *options) { o.editor = editor }
}

// Model is the root Bubble Tea model for the calendar.
type Model struct {
	ctrl   *view.Controller
	vault  Vault
	bridge *bridge
	ctx    context.Context
	logger *slog.Logger
	clock  func() time.Time
	root   string
	editor string

	// Terminal dimensions
	width  int
	height int

	snap   view.Snapshot
	cursor calendar.Day
	// focus indexes the cursor day's events; -1 is the day itself.
	focus int
	// expanded lets focus run past the collapsed cards. The cell then
	// scrolls a window over all of the day's events.
	expanded bool

	mode       mode
	jump       textinput.Model
	folders    []string
	pickCursor int

	preview     view.Preview
	showPreview bool

	// Status message (shown until the next one)
	statusMsg string
	statusErr bool

	help help.Model
}

// New returns a model showing the current month of the configured source
// folder. Its Init loads the notes.
func New(v Vault, settings view.SettingsSource, opts ...Option) Model {
	o := options{
		ctx:      context.Background(),
		logger:   slog.Default(),
		clock:    time.Now,
		debounce: view.DefaultRefreshDebounce,
		editor:   os.Getenv("EDITOR"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	b := newBridge()
	ctrl := view.NewController(v, b, settings,
		view.WithLogger(o.logger),
		view.WithClock(o.clock),
		view.WithDebounce(o.debounce),
		view.WithOnChange(b.snapshotChanged),
		view.WithOnPreview(b.previewChanged),
	)

	ti := textinput.New()
	ti.Placeholder = "YYYY-MM"
	ti.CharLimit = 7
	ti.Width = 10

	return Model{
		ctrl:   ctrl,
		vault:  v,
		bridge: b,
		ctx:    o.ctx,
		logger: o.logger,
		clock:  o.clock,
		root:   o.root,
		editor: o.editor,
		width:  defaultTerminalWidth,
		height: defaultTerminalHeight,
		snap:   ctrl.Snapshot(),
		cursor: calendar.DayOf(o.clock()),
		focus:  -1,
		jump:   ti,
		help:   help.New(),
	}
}

// Controller exposes the view controller, e.g. to feed it change
// notifications.
func (m Model) Controller() *view.Controller {
	return m.ctrl
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("foliocal"),
		m.refresh(),
		m.bridge.listen(),
	)
}

func (m Model) refresh() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return refreshedMsg{err: ctrl.Refresh(ctx)}
	}
}

func (m Model) loadFolders() tea.Cmd {
	v, ctx := m.vault, m.ctx
	return func() tea.Msg {
		folders, err := v.Folders(ctx)
		return foldersMsg{folders: folders, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		m.snap = m.ctrl.Snapshot()
		m.clampFocus()
		return m, m.bridge.listen()

	case previewMsg:
		m.preview, m.showPreview = m.ctrl.Preview()
		return m, m.bridge.listen()

	case editMsg:
		abs := filepath.Join(m.root, filepath.FromSlash(msg.path))
		path := msg.path
		return m, tea.Batch(
			m.bridge.listen(),
			tea.ExecProcess(editorCmd(m.editor, abs), func(err error) tea.Msg {
				return editorClosedMsg{path: path, err: err}
			}),
		)

	case editorClosedMsg:
		if msg.err != nil {
			m.logger.Error("tui: editor failed", slog.String("path", msg.path), slog.String("error", msg.err.Error()))
			m.setStatus("editor: "+msg.err.Error(), true)
		}
		return m, m.refresh()

	case refreshedMsg:
		if msg.err != nil {
			m.logger.Warn("tui: refresh failed", slog.String("error", msg.err.Error()))
			m.setStatus("refresh failed: "+msg.err.Error(), true)
		}
		return m, nil

	case openedMsg:
		switch {
		case msg.err != nil:
			m.logger.Error("tui: open failed", slog.String("path", msg.path), slog.String("error", msg.err.Error()))
			m.setStatus(msg.err.Error(), true)
		case msg.created:
			m.setStatus("created "+msg.path, false)
		}
		return m, nil

	case foldersMsg:
		if msg.err != nil {
			m.setStatus("folders: "+msg.err.Error(), true)
			return m, nil
		}
		m.folders = msg.folders
		m.pickCursor = max(0, slices.Index(m.folders, m.snap.Folder))
		m.mode = modeFolders
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeJump:
			return m.updateJump(msg)
		case modeFolders:
			return m.updateFolders(msg)
		case modeTags:
			return m.updateTags(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.ctrl.Close()
		return m, tea.Quit
	case key.Matches(msg, keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, keys.Up):
		m.moveCursor(-7)
	case key.Matches(msg, keys.Down):
		m.moveCursor(7)
	case key.Matches(msg, keys.PrevMonth):
		m.snap = m.ctrl.PreviousMonth()
		m.cursor = m.snap.Month.First()
		m.resetFocus()
	case key.Matches(msg, keys.NextMonth):
		m.snap = m.ctrl.NextMonth()
		m.cursor = m.snap.Month.First()
		m.resetFocus()
	case key.Matches(msg, keys.Today):
		m.snap = m.ctrl.GoToday()
		m.cursor = calendar.DayOf(m.clock())
		m.resetFocus()
	case key.Matches(msg, keys.Jump):
		m.mode = modeJump
		m.jump.SetValue(m.snap.Month.String())
		m.jump.CursorEnd()
		return m, m.jump.Focus()
	case key.Matches(msg, keys.Folder):
		return m, m.loadFolders()
	case key.Matches(msg, keys.Tags):
		if len(m.snap.AllTags) == 0 {
			m.setStatus("no tags in this folder", false)
			return m, nil
		}
		m.mode = modeTags
		m.pickCursor = 0
	case key.Matches(msg, keys.ClearTags):
		m.snap = m.ctrl.ClearTags()
		m.clampFocus()
	case key.Matches(msg, keys.NextCard):
		m.cycleFocus()
	case key.Matches(msg, keys.Open):
		return m, m.open()
	case key.Matches(msg, keys.Close):
		m.resetFocus()
	}
	return m, nil
}

func (m Model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Close):
		m.mode = modeGrid
		m.jump.Blur()
		return m, nil
	case key.Matches(msg, keys.Open):
		mo, err := calendar.ParseMonth(strings.TrimSpace(m.jump.Value()))
		if err != nil {
			m.setStatus("enter a month as YYYY-MM", true)
			return m, nil
		}
		m.snap = m.ctrl.SetMonthYear(mo.Year, mo.Month)
		m.cursor = m.snap.Month.First()
		m.resetFocus()
		m.mode = modeGrid
		m.jump.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m Model) updateFolders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Close):
		m.mode = modeGrid
	case key.Matches(msg, keys.Up):
		m.pickCursor = max(0, m.pickCursor-1)
	case key.Matches(msg, keys.Down):
		m.pickCursor = min(len(m.folders)-1, m.pickCursor+1)
	case key.Matches(msg, keys.Open):
		if m.pickCursor < len(m.folders) {
			m.snap = m.ctrl.SetFolder(m.folders[m.pickCursor])
			m.resetFocus()
		}
		m.mode = modeGrid
	}
	return m, nil
}

func (m Model) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := m.snap.AllTags
	switch {
	case key.Matches(msg, keys.Close), key.Matches(msg, keys.Open):
		m.mode = modeGrid
	case key.Matches(msg, keys.Up):
		m.pickCursor = max(0, m.pickCursor-1)
	case key.Matches(msg, keys.Down):
		m.pickCursor = min(len(tags)-1, m.pickCursor+1)
	case key.Matches(msg, keys.Toggle):
		if m.pickCursor < len(tags) {
			m.snap = m.ctrl.ToggleTag(tags[m.pickCursor])
			m.clampFocus()
		}
	case key.Matches(msg, keys.ClearTags):
		m.snap = m.ctrl.ClearTags()
		m.clampFocus()
	}
	return m, nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.statusMsg = s
	m.statusErr = isErr
}

// moveCursor shifts the cursor by n days, following it into the adjacent
// month when it leaves the viewed one.
func (m *Model) moveCursor(n int) {
	m.cursor = m.cursor.AddDays(n)
	if !m.snap.Month.Contains(m.cursor) {
		mo := m.cursor.MonthOf()
		m.snap = m.ctrl.SetMonthYear(mo.Year, mo.Month)
		if !m.snap.Month.Contains(m.cursor) {
			m.cursor = m.snap.Month.First()
		}
	}
	m.resetFocus()
}

func (m *Model) resetFocus() {
	if m.focus >= 0 || m.showPreview {
		m.ctrl.ClosePreview()
	}
	m.focus = -1
	m.expanded = false
	m.showPreview = false
}

func (m *Model) clampFocus() {
	if m.focus < 0 {
		return
	}
	cell, _ := m.snap.Cell(m.cursor)
	if m.focus >= len(cell.Events) {
		m.resetFocus()
	}
}

// cycleFocus moves the card focus through the cursor day's notes and back
// to the day itself, arming the hover preview on each card. Tabbing past
// the last collapsed card expands the cell.
func (m *Model) cycleFocus() {
	cell, _ := m.snap.Cell(m.cursor)
	if len(cell.Events) == 0 {
		return
	}
	m.focus++
	if m.focus >= len(cell.Events) {
		m.resetFocus()
		return
	}
	if m.focus >= grid.MaxVisibleEvents {
		m.expanded = true
	}
	m.showPreview = false
	_, offset := m.cards(cell)
	m.ctrl.RequestPreview(cell.Events[m.focus].File, m.cardRect(m.cursor, m.focus-offset))
}

// cards returns the events drawn in c and the index of the first one. An
// expanded cursor day shows a window that keeps the focused card in view.
func (m Model) cards(c grid.Cell) ([]events.Event, int) {
	if !m.expanded || c.Date != m.cursor || len(c.Events) <= grid.MaxVisibleEvents {
		return c.Visible(), 0
	}
	offset := min(max(0, m.focus-(grid.MaxVisibleEvents-1)), len(c.Events)-grid.MaxVisibleEvents)
	return c.Events[offset : offset+grid.MaxVisibleEvents], offset
}

func (m Model) focusedPath() (string, bool) {
	if m.focus < 0 {
		return "", false
	}
	cell, _ := m.snap.Cell(m.cursor)
	if m.focus >= len(cell.Events) {
		return "", false
	}
	return cell.Events[m.focus].File, true
}

// open opens the focused note, or the cursor day's note when no card is
// focused.
func (m Model) open() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	if path, ok := m.focusedPath(); ok {
		return func() tea.Msg {
			return openedMsg{path: path, err: ctrl.OpenNote(ctx, path)}
		}
	}
	d := m.cursor
	return func() tea.Msg {
		path, created, err := ctrl.CreateOrOpen(ctx, d)
		return openedMsg{path: path, created: created, err: err}
	}
}

func editorCmd(editor, path string) *exec.Cmd {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		parts = []string{"vi"}
	}
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...)
}
