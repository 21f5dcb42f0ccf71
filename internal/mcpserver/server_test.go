package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/foliocal/internal/noteservice"
	"github.com/starford/foliocal/internal/testutil"
	"github.com/starford/foliocal/internal/view"
)

var noopOpener = view.NoopOpener

func testServer(t *testing.T, files map[string]string) (*Server, *testutil.Env) {
	t.Helper()
	env := testutil.NewEnv(t, files)
	s := view.DefaultSettings()
	s.SourceFolder = "Journal"
	svc := noteservice.NewService(env.Vault, noopOpener, view.StaticSettings(s),
		noteservice.WithLogger(testutil.Logger()),
		noteservice.WithClock(func() time.Time { return time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC) }))
	return New(svc), env
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so dispatch to the
	// handler functions by name.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "get_calendar_month":
		result, err = srv.getCalendarMonth(ctx, req)
	case "list_calendar_tags":
		result, err = srv.listCalendarTags(ctx, req)
	case "open_day_note":
		result, err = srv.openDayNote(ctx, req)
	case "preview_note":
		result, err = srv.previewNote(ctx, req)
	case "list_folders":
		result, err = srv.listFolders(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

var files = map[string]string{
	"Journal/standup.md": "---\ndate: 2024-03-15\ntags: [work]\n---\nagenda for the week",
	"Journal/gym.md":     "---\ndate: 2024-03-16\ntags: [health]\n---\n",
	"Archive/old.md":     "---\ndate: 2023-01-01\ntags: [old]\n---\n",
}

func TestGetCalendarMonth(t *testing.T) {
	srv, _ := testServer(t, files)

	r := callTool(t, srv, "get_calendar_month", map[string]interface{}{
		"month": "2024-03",
		"tags":  []interface{}{"work"},
	})
	if r.IsError {
		t.Fatalf("error: %s", resultText(r))
	}
	var snap view.Snapshot
	if err := json.Unmarshal([]byte(resultText(r)), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Folder != "Journal" || snap.Label != "2024 03" {
		t.Errorf("folder = %q label = %q", snap.Folder, snap.Label)
	}
	var titles []string
	for _, c := range snap.Cells {
		for _, ev := range c.Events {
			titles = append(titles, ev.Title)
		}
	}
	if strings.Join(titles, ",") != "standup" {
		t.Errorf("titles = %v", titles)
	}
}

func TestGetCalendarMonth_BadMonth(t *testing.T) {
	srv, _ := testServer(t, nil)
	r := callTool(t, srv, "get_calendar_month", map[string]interface{}{"month": "2024/03"})
	if !r.IsError {
		t.Error("expected error for malformed month")
	}
}

func TestListCalendarTags(t *testing.T) {
	srv, _ := testServer(t, files)

	r := callTool(t, srv, "list_calendar_tags", map[string]interface{}{})
	if got := resultText(r); got != "health\nwork" {
		t.Errorf("tags = %q", got)
	}
	r = callTool(t, srv, "list_calendar_tags", map[string]interface{}{"folder": ""})
	if got := resultText(r); got != "health\nold\nwork" {
		t.Errorf("vault tags = %q", got)
	}
	r = callTool(t, srv, "list_calendar_tags", map[string]interface{}{"folder": "Empty"})
	if got := resultText(r); got != "no tags found" {
		t.Errorf("empty folder = %q", got)
	}
}

func TestOpenDayNote(t *testing.T) {
	srv, _ := testServer(t, nil)

	r := callTool(t, srv, "open_day_note", map[string]interface{}{"date": "2024-03-20"})
	if r.IsError {
		t.Fatalf("error: %s", resultText(r))
	}
	var out struct {
		Path    string `json:"path"`
		Created bool   `json:"created"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatal(err)
	}
	if out.Path != "Journal/2024-03-20.md" || !out.Created || out.Content != "---\ndate: 2024-03-20\n---\n\n" {
		t.Errorf("first = %+v", out)
	}

	r = callTool(t, srv, "open_day_note", map[string]interface{}{"date": "2024-03-20"})
	_ = json.Unmarshal([]byte(resultText(r)), &out)
	if out.Created {
		t.Error("second call created again")
	}

	r = callTool(t, srv, "open_day_note", map[string]interface{}{"date": "tomorrow"})
	if !r.IsError {
		t.Error("expected error for malformed date")
	}
}

func TestPreviewNote(t *testing.T) {
	srv, _ := testServer(t, files)

	r := callTool(t, srv, "preview_note", map[string]interface{}{"path": "Journal/standup.md"})
	if !strings.Contains(resultText(r), `"excerpt": "agenda for the week"`) {
		t.Errorf("preview = %s", resultText(r))
	}
	r = callTool(t, srv, "preview_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestListFolders(t *testing.T) {
	srv, _ := testServer(t, files)
	r := callTool(t, srv, "list_folders", map[string]interface{}{})
	if got := resultText(r); got != "/\nArchive\nJournal" {
		t.Errorf("folders = %q", got)
	}
}

func TestListedRootFolderRoundTrips(t *testing.T) {
	srv, _ := testServer(t, files)

	r := callTool(t, srv, "list_calendar_tags", map[string]interface{}{"folder": "/"})
	if got := resultText(r); got != "health\nold\nwork" {
		t.Errorf("root tags = %q", got)
	}

	r = callTool(t, srv, "get_calendar_month", map[string]interface{}{"month": "2023-01", "folder": "/"})
	var snap view.Snapshot
	if err := json.Unmarshal([]byte(resultText(r)), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Folder != "" || snap.Total != 3 {
		t.Errorf("folder = %q total = %d, want root scope with 3 events", snap.Folder, snap.Total)
	}

	r = callTool(t, srv, "list_calendar_tags", map[string]interface{}{"folder": "/Journal/"})
	if got := resultText(r); got != "health\nwork" {
		t.Errorf("slashed folder tags = %q", got)
	}
}

func TestNoteFormatResource(t *testing.T) {
	srv, _ := testServer(t, nil)
	contents, err := srv.readNoteFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != NoteFormatURI || !strings.Contains(tc.Text, "date:") {
		t.Errorf("resource = %+v", contents[0])
	}
}
