package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/grid"
	"github.com/starford/foliocal/internal/preview"
	"github.com/starford/foliocal/internal/view"
)

const (
	defaultTerminalWidth  = 80
	defaultTerminalHeight = 24

	// headerLines are the title and weekday rows above the grid.
	headerLines = 2
	// rowLines is one grid week: day number, visible cards, overflow.
	rowLines = 1 + grid.MaxVisibleEvents + 1

	minCellWidth    = 8
	maxPreviewWidth = 48
	maxPreviewLines = 10
)

func (m Model) cellWidth() int {
	return max(minCellWidth, m.width/7)
}

// cardRect is the terminal-cell box of card i of day d.
func (m Model) cardRect(d calendar.Day, i int) preview.Rect {
	k := 0
	for idx, c := range m.snap.Cells {
		if c.Date == d {
			k = idx
			break
		}
	}
	cw := m.cellWidth()
	left := (k % 7) * cw
	top := headerLines + (k/7)*rowLines + 1 + i
	return preview.NewRect(float64(left), float64(top), float64(cw), 1)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteByte('\n')
	b.WriteString(m.renderWeekdays())
	b.WriteByte('\n')
	b.WriteString(m.renderGrid())
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())

	out := b.String()
	if m.showPreview && m.preview.Status != "" {
		box := m.renderPreview()
		pt := preview.Place(m.preview.Trigger,
			preview.Size{Width: float64(lipgloss.Width(box)), Height: float64(lipgloss.Height(box))},
			preview.Size{Width: float64(m.width), Height: float64(m.height)},
			preview.WithGap(1), preview.WithMargin(1),
		)
		out = overlay(out, box, int(pt.X), int(pt.Y))
	}
	return out
}

func (m Model) renderTitle() string {
	folder := m.snap.Folder
	if folder == "" {
		folder = "/"
	}
	parts := []string{
		titleStyle.Render(m.snap.Label),
		mutedStyle.Render("in " + folder),
	}
	for _, t := range m.snap.ActiveTags {
		parts = append(parts, tagStyle.Render("#"+t))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderWeekdays() string {
	cw := m.cellWidth()
	var b strings.Builder
	for _, wd := range m.snap.Weekdays {
		b.WriteString(pad(weekdayStyle.Render(wd), cw))
	}
	return b.String()
}

func (m Model) renderGrid() string {
	cw := m.cellWidth()
	var lines []string
	for _, week := range grid.Weeks(m.snap.Cells) {
		for li := 0; li < rowLines; li++ {
			var b strings.Builder
			for _, c := range week {
				b.WriteString(pad(m.cellLine(c, li, cw), cw))
			}
			lines = append(lines, b.String())
		}
	}
	return strings.Join(lines, "\n")
}

// cellLine renders line li of cell c: the day number, then the visible
// cards, then the overflow count.
func (m Model) cellLine(c grid.Cell, li, cw int) string {
	switch {
	case li == 0:
		num := fmt.Sprintf("%2d", c.Date.Day)
		switch {
		case c.Date == m.cursor:
			num = cursorStyle.Render(num)
		case c.IsToday:
			num = todayStyle.Render(num)
		case !c.InViewedMonth:
			num = mutedStyle.Render(num)
		}
		return num
	case li <= grid.MaxVisibleEvents:
		vis, offset := m.cards(c)
		i := li - 1
		if i >= len(vis) {
			return ""
		}
		ev := vis[i]
		text := ev.Title
		if ev.Icon != "" {
			text = ev.Icon + " " + text
		}
		text = truncate.StringWithTail(text, uint(max(1, cw-1)), "…")
		if c.Date == m.cursor && offset+i == m.focus {
			return focusedCardStyle.Render(text)
		}
		if !c.InViewedMonth {
			return mutedStyle.Render(text)
		}
		return cardStyle.Render(text)
	default:
		if vis, offset := m.cards(c); offset > 0 || (m.expanded && c.Date == m.cursor && c.Hidden() > 0) {
			return mutedStyle.Render(fmt.Sprintf("%d-%d of %d", offset+1, offset+len(vis), len(c.Events)))
		}
		if n := c.Hidden(); n > 0 {
			return mutedStyle.Render(fmt.Sprintf("+%d more", n))
		}
		return ""
	}
}

func (m Model) renderFooter() string {
	var b strings.Builder
	switch m.mode {
	case modeJump:
		b.WriteString("Go to month: " + m.jump.View())
	case modeFolders:
		b.WriteString(m.renderPicker("Folder", m.folders, func(i int) bool { return m.folders[i] == m.snap.Folder }))
	case modeTags:
		active := make(map[string]bool, len(m.snap.ActiveTags))
		for _, t := range m.snap.ActiveTags {
			active[t] = true
		}
		b.WriteString(m.renderPicker("Tags (space toggles)", m.snap.AllTags, func(i int) bool { return active[m.snap.AllTags[i]] }))
	default:
		b.WriteString(m.help.View(keys))
	}
	if m.statusMsg != "" {
		b.WriteByte('\n')
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.statusMsg))
		} else {
			b.WriteString(statusStyle.Render(m.statusMsg))
		}
	}
	return b.String()
}

func (m Model) renderPicker(title string, items []string, checked func(int) bool) string {
	var lines []string
	lines = append(lines, titleStyle.Render(title))
	for i, it := range items {
		label := it
		if label == "" {
			label = "/"
		}
		mark := "[ ] "
		if checked(i) {
			mark = "[x] "
		}
		line := mark + label
		if i == m.pickCursor {
			line = selectedItemStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return pickerStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPreview() string {
	width := min(maxPreviewWidth, max(20, m.width-2))
	inner := width - 4

	var body string
	switch m.preview.Status {
	case view.PreviewLoading:
		body = mutedStyle.Render("loading…")
	case view.PreviewFailed:
		body = errorStyle.Render("could not read note")
	default:
		body = renderMarkdown(inner, m.preview.Excerpt)
		if lines := strings.Split(body, "\n"); len(lines) > maxPreviewLines {
			body = strings.Join(lines[:maxPreviewLines], "\n")
		}
	}
	content := titleStyle.Render(truncate.StringWithTail(m.preview.Title, uint(inner), "…"))
	if body != "" {
		content += "\n" + body
	}
	return previewStyle.Width(width - 2).Render(content)
}
