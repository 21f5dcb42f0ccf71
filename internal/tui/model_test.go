package tui

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/starford/foliocal/internal/apperr"
	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/models"
	"github.com/starford/foliocal/internal/parser"
	"github.com/starford/foliocal/internal/testutil"
	"github.com/starford/foliocal/internal/view"
)

type memVault struct {
	mu    sync.Mutex
	notes map[string]string
}

func newMemVault(notes map[string]string) *memVault {
	v := &memVault{notes: map[string]string{}}
	for p, c := range notes {
		v.notes[p] = c
	}
	return v
}

func (v *memVault) ListNotes(context.Context) ([]models.NoteRecord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []models.NoteRecord
	for p, c := range v.notes {
		rec := models.NoteRecord{Path: p}
		if res, err := parser.Parse([]byte(c)); err == nil {
			rec.Frontmatter = res.Frontmatter
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (v *memVault) Exists(_ context.Context, path string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.notes[path]
	return ok, nil
}

func (v *memVault) Create(_ context.Context, path, content string) (models.NoteRecord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.notes[path]; ok {
		return models.NoteRecord{}, apperr.ErrAlreadyExists
	}
	v.notes[path] = content
	return models.NoteRecord{Path: path}, nil
}

func (v *memVault) Read(_ context.Context, path string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	c, ok := v.notes[path]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return c, nil
}

func (v *memVault) Folders(context.Context) ([]string, error) {
	return []string{"", "Journal", "Projects"}, nil
}

var fixedNow = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

var notes = map[string]string{
	"Journal/standup.md": "---\ndate: 2024-03-15\ntags: [work]\n---\nSprint agenda",
	"Journal/gym.md":     "---\ndate: 2024-03-15\ntags: [health]\n---\nLeg day",
	"Projects/launch.md": "---\ndate: 2024-03-20\ntags: [work]\n---\n",
}

func newModel(t *testing.T, v *memVault) Model {
	t.Helper()
	s := view.DefaultSettings()
	s.SourceFolder = "Journal"
	s.HoverPreviewDelay = 0
	m := New(v, view.StaticSettings(s),
		WithLogger(testutil.Logger()),
		WithClock(func() time.Time { return fixedNow }),
		WithVaultRoot(t.TempDir()),
		WithEditor("true"),
	)
	t.Cleanup(m.ctrl.Close)
	if err := m.ctrl.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	m = step(t, m, snapshotMsg{})
	m = step(t, m, tea.WindowSizeMsg{Width: 112, Height: 40})
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = step(t, m, msg)
	}
	return m
}

// eventually polls cond until it returns true or the timeout expires.
func eventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestView_ShowsMonthAndCards(t *testing.T) {
	m := newModel(t, newMemVault(notes))
	out := m.View()
	for _, want := range []string{"2024 03", "in Journal", "Mon", "gym", "standup"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "launch") {
		t.Error("note outside the folder is shown")
	}
}

func TestNavigation_CursorCrossesMonths(t *testing.T) {
	m := newModel(t, newMemVault(notes))
	if m.cursor != calendar.NewDay(2024, time.March, 15) {
		t.Fatalf("cursor = %v", m.cursor)
	}
	m = press(t, m, "down", "down", "down")
	if m.cursor != calendar.NewDay(2024, time.April, 5) {
		t.Errorf("cursor = %v", m.cursor)
	}
	if m.snap.Month != calendar.NewMonth(2024, time.April) {
		t.Errorf("month = %v, want April", m.snap.Month)
	}

	m = press(t, m, "[", "[")
	if m.snap.Month != calendar.NewMonth(2024, time.February) || m.cursor != calendar.NewDay(2024, time.February, 1) {
		t.Errorf("month = %v cursor = %v", m.snap.Month, m.cursor)
	}
	m = press(t, m, "left")
	if m.snap.Month != calendar.NewMonth(2024, time.January) {
		t.Errorf("month = %v, want January", m.snap.Month)
	}

	m = press(t, m, "t")
	if m.snap.Month != calendar.NewMonth(2024, time.March) || m.cursor != calendar.NewDay(2024, time.March, 15) {
		t.Errorf("today: month = %v cursor = %v", m.snap.Month, m.cursor)
	}
}

func TestJump(t *testing.T) {
	m := newModel(t, newMemVault(notes))
	m = press(t, m, "g")
	if m.mode != modeJump {
		t.Fatal("jump mode not entered")
	}
	m.jump.SetValue("")
	m = press(t, m, "2", "0", "3", "0", "-", "0", "7", "enter")
	if m.mode != modeGrid || m.snap.Month != calendar.NewMonth(2030, time.July) {
		t.Errorf("mode = %v month = %v", m.mode, m.snap.Month)
	}

	m = press(t, m, "g")
	m.jump.SetValue("nope")
	m = press(t, m, "enter")
	if m.mode != modeJump || !m.statusErr {
		t.Error("invalid month accepted")
	}
	m = press(t, m, "esc")
	if m.mode != modeGrid || m.snap.Month != calendar.NewMonth(2030, time.July) {
		t.Errorf("esc changed the month: %v", m.snap.Month)
	}
}

func TestFolderPicker(t *testing.T) {
	m := newModel(t, newMemVault(notes))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("no folder load command")
	}
	m = step(t, m, cmd())
	if m.mode != modeFolders || m.pickCursor != 1 {
		t.Fatalf("mode = %v cursor = %d", m.mode, m.pickCursor)
	}
	m = press(t, m, "up", "enter")
	if m.snap.Folder != "" {
		t.Errorf("folder = %q, want root", m.snap.Folder)
	}
	if !strings.Contains(m.View(), "launch") {
		t.Error("root scope hides Projects notes")
	}
}

func TestTagPicker(t *testing.T) {
	m := newModel(t, newMemVault(notes))
	m = press(t, m, "#")
	if m.mode != modeTags {
		t.Fatal("tag mode not entered")
	}
	// Tags are health, work; toggle "work".
	m = press(t, m, "down", "space")
	if got := m.snap.ActiveTags; len(got) != 1 || got[0] != "work" {
		t.Fatalf("active = %v", got)
	}
	cell, _ := m.snap.Cell(calendar.NewDay(2024, time.March, 15))
	if len(cell.Events) != 1 || cell.Events[0].Title != "standup" {
		t.Errorf("filtered cell = %+v", cell.Events)
	}
	m = press(t, m, "esc", "c")
	if len(m.snap.ActiveTags) != 0 {
		t.Errorf("clear left %v", m.snap.ActiveTags)
	}
}

func TestEnter_CreatesDayNoteAndRequestsEditor(t *testing.T) {
	v := newMemVault(notes)
	m := newModel(t, v)
	m = press(t, m, "right")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	msg := cmd().(openedMsg)
	if msg.err != nil || !msg.created || msg.path != "Journal/2024-03-16.md" {
		t.Fatalf("opened = %+v", msg)
	}
	m = step(t, m, msg)
	if !strings.Contains(m.statusMsg, "created Journal/2024-03-16.md") {
		t.Errorf("status = %q", m.statusMsg)
	}

	select {
	case p := <-m.bridge.opens:
		if p != "Journal/2024-03-16.md" {
			t.Errorf("editor path = %q", p)
		}
	default:
		t.Fatal("no editor request queued")
	}
	if c, _ := v.Read(context.Background(), "Journal/2024-03-16.md"); c != "---\ndate: 2024-03-16\n---\n\n" {
		t.Errorf("content = %q", c)
	}
}

func TestTab_FocusesCardAndShowsPreview(t *testing.T) {
	m := newModel(t, newMemVault(notes))
	m = press(t, m, "tab")
	if m.focus != 0 {
		t.Fatalf("focus = %d", m.focus)
	}

	eventually(t, time.Second, func() bool {
		p, ok := m.ctrl.Preview()
		return ok && p.Status == view.PreviewReady
	})
	m = step(t, m, previewMsg{})
	if !m.showPreview || m.preview.Path != "Journal/gym.md" {
		t.Fatalf("preview = %+v shown = %v", m.preview, m.showPreview)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Leg day") {
		t.Errorf("preview body missing:\n%s", m.View())
	}

	// Enter on a focused card opens that note.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd().(openedMsg); msg.path != "Journal/gym.md" || msg.created {
		t.Errorf("opened = %+v", msg)
	}

	m = press(t, m, "tab", "tab")
	if m.focus != -1 || m.showPreview {
		t.Errorf("focus = %d shown = %v after cycling past the last card", m.focus, m.showPreview)
	}
	if _, ok := m.ctrl.Preview(); ok {
		t.Error("controller preview still open")
	}
}

func TestTab_ExpandsCrowdedDay(t *testing.T) {
	crowded := map[string]string{}
	titles := []string{"First", "Second", "Third", "Fourth", "Fifth"}
	for i, title := range titles {
		path := "Journal/" + string(rune('a'+i)) + ".md"
		crowded[path] = "---\ndate: 2024-03-15\ntitle: " + title + "\n---\n"
	}
	m := newModel(t, newMemVault(crowded))
	if !strings.Contains(ansi.Strip(m.View()), "+2 more") {
		t.Fatalf("collapsed cell missing overflow:\n%s", ansi.Strip(m.View()))
	}

	m = press(t, m, "tab", "tab", "tab", "tab", "tab")
	if path, ok := m.focusedPath(); !ok || path != "Journal/e.md" {
		t.Fatalf("focused = %q %v, want Journal/e.md", path, ok)
	}
	if !m.expanded {
		t.Fatal("cell not expanded after tabbing past the third card")
	}
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Fifth") || !strings.Contains(out, "3-5 of 5") {
		t.Errorf("expanded window not rendered:\n%s", out)
	}
	if strings.Contains(out, "First") {
		t.Errorf("window did not scroll:\n%s", out)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg := cmd().(openedMsg); msg.path != "Journal/e.md" || msg.created {
		t.Errorf("opened = %+v", msg)
	}

	m = press(t, m, "tab")
	if m.focus != -1 || m.expanded {
		t.Errorf("focus = %d expanded = %v after cycling past the last card", m.focus, m.expanded)
	}
	if !strings.Contains(ansi.Strip(m.View()), "+2 more") {
		t.Error("cell did not collapse again")
	}
}

func TestQuitClosesController(t *testing.T) {
	m := newModel(t, newMemVault(notes))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	before := m.ctrl.Snapshot()
	if after := m.ctrl.NextMonth(); after.Month != before.Month {
		t.Error("closed controller still navigates")
	}
}

func TestOverlay(t *testing.T) {
	got := overlay("aaaaa\nbbbbb", "XY", 1, 1)
	if got != "aaaaa\nbXYbb" {
		t.Errorf("overlay = %q", got)
	}
	got = overlay("ab", "XY\nZW", 3, 0)
	if got != "ab XY\n   ZW" {
		t.Errorf("overlay past end = %q", got)
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 4); got != "ab  " {
		t.Errorf("pad = %q", got)
	}
	if got := pad("abcdef", 3); got != "abc" {
		t.Errorf("pad cut = %q", got)
	}
}

func TestEditorCmd(t *testing.T) {
	c := editorCmd("code --wait", "/v/a.md")
	if strings.Join(c.Args, " ") != "code --wait /v/a.md" {
		t.Errorf("args = %v", c.Args)
	}
	if c := editorCmd("", "x.md"); c.Args[0] != "vi" {
		t.Errorf("fallback = %v", c.Args)
	}
}
