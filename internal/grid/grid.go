// Package grid buckets calendar events into the 42 cells of a month view.
package grid

import (
	"time"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/events"
)

// MaxVisibleEvents is how many events a cell shows before collapsing the
// rest behind a "show more" control.
const MaxVisibleEvents = 3

// Cell is one day slot of the month grid.
type Cell struct {
	Date          calendar.Day   `json:"date"`
	InViewedMonth bool           `json:"in_viewed_month"`
	IsToday       bool           `json:"is_today"`
	Events        []events.Event `json:"events"`
}

// Visible returns the events shown before the overflow control.
func (c Cell) Visible() []events.Event {
	if len(c.Events) <= MaxVisibleEvents {
		return c.Events
	}
	return c.Events[:MaxVisibleEvents]
}

// Hidden returns how many events are collapsed.
func (c Cell) Hidden() int {
	if n := len(c.Events) - MaxVisibleEvents; n > 0 {
		return n
	}
	return 0
}

// Build lays out month with evs bucketed by day. today marks the current
// day; every cell is compared against the same value.
func Build(month calendar.Month, evs []events.Event, ws calendar.WeekStart, today calendar.Day) []Cell {
	byDay := make(map[calendar.Day][]events.Event)
	for _, ev := range evs {
		byDay[ev.Date] = append(byDay[ev.Date], ev)
	}

	days := calendar.DaysInGridFor(month, ws)
	cells := make([]Cell, len(days))
	for i, d := range days {
		bucket := byDay[d]
		if bucket == nil {
			bucket = []events.Event{}
		}
		cells[i] = Cell{
			Date:          d,
			InViewedMonth: month.Contains(d),
			IsToday:       d == today,
			Events:        bucket,
		}
	}
	return cells
}

// BuildNow is Build with today sampled once from the local clock.
func BuildNow(month calendar.Month, evs []events.Event, ws calendar.WeekStart) []Cell {
	return Build(month, evs, ws, calendar.DayOf(time.Now()))
}

// Weeks splits cells into rows of seven.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(cells); i += 7 {
		end := min(i+7, len(cells))
		rows = append(rows, cells[i:end])
	}
	return rows
}
