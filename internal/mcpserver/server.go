// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes calendar tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/noteservice"
	"github.com/starford/foliocal/internal/view"
)

// NoteFormatURI is the resource URI of NoteFormatContract.
const NoteFormatURI = "foliocal://note-format"

// Server wraps the MCP server with calendar tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all calendar tools registered.
func New(svc *noteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"foliocal",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_calendar_month",
		mcp.WithDescription("Get the month grid of dated notes: 42 days with the events on each."),
		mcp.WithString("month", mcp.Description("Month as YYYY-MM (default: current month)")),
		mcp.WithString("folder", mcp.Description("Folder to scope to (default: configured source folder, empty for the whole vault)")),
		mcp.WithArray("tags", mcp.WithStringItems(), mcp.Description("Show only events carrying any of these tags")),
	), s.getCalendarMonth)

	s.mcp.AddTool(mcp.NewTool("list_calendar_tags",
		mcp.WithDescription("List the tags used by dated notes in a folder."),
		mcp.WithString("folder", mcp.Description("Folder to scope to")),
	), s.listCalendarTags)

	s.mcp.AddTool(mcp.NewTool("open_day_note",
		mcp.WithDescription("Open the note for a day, creating it with only the date field when missing. "+
			"Returns the path, whether it was created, and the note content. "+
			"See the "+NoteFormatURI+" resource for the format."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day as YYYY-MM-DD")),
		mcp.WithString("folder", mcp.Description("Folder for the note")),
	), s.openDayNote)

	s.mcp.AddTool(mcp.NewTool("preview_note",
		mcp.WithDescription("Get a short excerpt of a note without its frontmatter."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. Journal/2024-03-15.md)")),
	), s.previewNote)

	s.mcp.AddTool(mcp.NewTool("list_folders",
		mcp.WithDescription("List the vault folders usable as calendar scope. The root is listed as \"/\"."),
	), s.listFolders)

	// Resource: day note format.
	s.mcp.AddResource(
		mcp.NewResource(NoteFormatURI, "Day Note Format",
			mcp.WithResourceDescription("How notes are placed on the calendar and what day notes contain."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// folderArg returns the folder argument, or nil when it was not passed.
func folderArg(req mcp.CallToolRequest) *string {
	raw, ok := req.GetArguments()["folder"]
	if !ok {
		return nil
	}
	f, ok := raw.(string)
	if !ok {
		return nil
	}
	// list_folders shows the root as "/"; folders are vault-relative.
	f = strings.Trim(f, "/")
	return &f
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func (s *Server) getCalendarMonth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := noteservice.Query{
		Folder: folderArg(req),
		Tags:   req.GetStringSlice("tags", nil),
	}
	if raw := req.GetString("month", ""); raw != "" {
		m, err := calendar.ParseMonth(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("month must be YYYY-MM: %q", raw)), nil
		}
		q.Month = m
	}
	snap, err := s.svc.Month(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(snap), nil
}

func (s *Server) listCalendarTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.svc.Tags(ctx, folderArg(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(tags) == 0 {
		return mcp.NewToolResultText("no tags found"), nil
	}
	return mcp.NewToolResultText(strings.Join(tags, "\n")), nil
}

func (s *Server) openDayNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := calendar.ParseDay(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("date must be YYYY-MM-DD: %q", raw)), nil
	}
	note, err := s.svc.OpenDay(ctx, d, folderArg(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := s.svc.Read(ctx, note.Path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", note.Path)), nil
	}
	return jsonResult(struct {
		noteservice.DayNote
		Content string `json:"content"`
	}{note, content}), nil
}

func (s *Server) previewNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p := s.svc.Preview(ctx, path)
	if p.Status != view.PreviewReady {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return jsonResult(p), nil
}

func (s *Server) listFolders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folders, err := s.svc.Folders(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lines := make([]string, len(folders))
	for i, f := range folders {
		if f == "" {
			f = "/"
		}
		lines[i] = f
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      NoteFormatURI,
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}
