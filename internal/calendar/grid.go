package calendar

import (
	"fmt"
	"time"
)

// GridSize is the number of cells in a month grid: six weeks of seven days.
const GridSize = 42

// WeekStart selects the first column of the grid.
type WeekStart string

// Supported week starts.
const (
	Monday WeekStart = "monday"
	Sunday WeekStart = "sunday"
)

// ParseWeekStart validates s. The empty string means Monday.
func ParseWeekStart(s string) (WeekStart, error) {
	switch WeekStart(s) {
	case "", Monday:
		return Monday, nil
	case Sunday:
		return Sunday, nil
	}
	return "", fmt.Errorf("calendar: unknown week start %q", s)
}

// Offset returns how many days of the previous month precede the first of
// the month when it falls on wd.
func (ws WeekStart) Offset(wd time.Weekday) int {
	if ws == Sunday {
		return int(wd)
	}
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// Labels returns the weekday column headers in grid order.
func (ws WeekStart) Labels() []string {
	if ws == Sunday {
		return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	}
	return []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
}

// DaysInGridFor returns the 42 consecutive days displayed for m: the tail of
// the previous month needed to align the first to its weekday column, the
// whole month, then the head of the next month.
func DaysInGridFor(m Month, ws WeekStart) []Day {
	first := m.First()
	start := first.AddDays(-ws.Offset(first.Weekday())).Time()

	days := make([]Day, GridSize)
	for i := range days {
		days[i] = DayOf(start.AddDate(0, 0, i))
	}
	return days
}
