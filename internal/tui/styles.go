package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// renderMarkdown renders markdown content using glamour.
func renderMarkdown(width int, content string) string {
	if content == "" {
		return ""
	}

	// A fixed style avoids slow terminal background detection.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	out, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(out)
}

// Colors
var (
	colorPrimary = lipgloss.Color("#E0A458")
	colorAccent  = lipgloss.Color("#A8D8B9")
	colorMuted   = lipgloss.Color("#666666")
	colorDanger  = lipgloss.Color("#E06C75")
	colorBorder  = lipgloss.Color("#444444")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	todayStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	focusedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFBE6")).
				Background(lipgloss.Color("#5C4B2E")).
				Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	pickerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorAccent)
)
