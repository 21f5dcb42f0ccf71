// Package printer renders a month snapshot as plain terminal text.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/starford/foliocal/internal/grid"
	"github.com/starford/foliocal/internal/view"
)

var (
	titleColor = color.New(color.Bold, color.Underline)
	todayColor = color.New(color.Bold, color.FgHiYellow)
	busyColor  = color.New(color.Bold)
	idleColor  = color.New()
	otherColor = color.New(color.Faint)
	tagColor   = color.New(color.Faint, color.Italic)
)

// Month writes the grid of snap followed by an agenda of its events.
func Month(w io.Writer, snap view.Snapshot) error {
	if _, err := fmt.Fprintln(w, titleColor.Sprint(header(snap))); err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.Separator = " "
	row := make([]any, len(snap.Weekdays))
	for i, wd := range snap.Weekdays {
		row[i] = wd
	}
	tbl.AddRow(row...)
	for _, week := range grid.Weeks(snap.Cells) {
		row := make([]any, len(week))
		for i, c := range week {
			row[i] = dayLabel(c)
		}
		tbl.AddRow(row...)
	}
	if _, err := fmt.Fprintln(w, tbl); err != nil {
		return err
	}

	agenda := Agenda(snap)
	if len(agenda.Rows) == 0 {
		_, err := fmt.Fprintln(w, "\nno events")
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", agenda)
	return err
}

// Agenda lists the events of the viewed month, one per row.
func Agenda(snap view.Snapshot) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range snap.Cells {
		if !c.InViewedMonth {
			continue
		}
		for _, ev := range c.Events {
			title := ev.Title
			if ev.Icon != "" {
				title = ev.Icon + " " + title
			}
			tags := ""
			if t := ev.Tags(); len(t) > 0 {
				tags = tagColor.Sprint("[" + strings.Join(t, ", ") + "]")
			}
			tbl.AddRow(c.Date.String(), title, tags)
		}
	}
	return tbl
}

// header names the month in words, then the scope and active tags.
func header(snap view.Snapshot) string {
	h := fmt.Sprintf("%s %d", snap.Month.Month, snap.Month.Year)
	if snap.Folder != "" {
		h += " · " + snap.Folder
	}
	if len(snap.ActiveTags) > 0 {
		h += " · #" + strings.Join(snap.ActiveTags, " #")
	}
	return h
}

// dayLabel is the day of month, with the event count when there is one.
func dayLabel(c grid.Cell) string {
	label := fmt.Sprintf("%2d", c.Date.Day)
	if n := len(c.Events); n > 0 {
		label += fmt.Sprintf("(%d)", n)
	}
	switch {
	case c.IsToday:
		return todayColor.Sprint(label)
	case !c.InViewedMonth:
		return otherColor.Sprint(label)
	case len(c.Events) > 0:
		return busyColor.Sprint(label)
	}
	return idleColor.Sprint(label)
}
