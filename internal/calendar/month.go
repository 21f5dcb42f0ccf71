package calendar

import (
	"fmt"
	"time"
)

// Year range offered by the month/year picker.
const (
	MinPickerYear = 1900
	MaxPickerYear = 2100
)

// MonthLayout is the canonical textual form of a Month.
const MonthLayout = "2006-01"

// Month identifies a calendar month. Month values are 1-based.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns the normalized month; month 13 becomes January of the
// following year, month 0 December of the previous one.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("calendar: parse month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// First returns the first day of the month.
func (m Month) First() Day {
	return Day{Year: m.Year, Month: m.Month, Day: 1}
}

// AddMonths returns m shifted by n months.
func (m Month) AddMonths(n int) Month {
	return NewMonth(m.Year, m.Month+time.Month(n))
}

// Next returns the following month.
func (m Month) Next() Month { return m.AddMonths(1) }

// Prev returns the preceding month.
func (m Month) Prev() Month { return m.AddMonths(-1) }

// Contains reports whether d falls inside m.
func (m Month) Contains(d Day) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String formats the month as "YYYY-MM".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label is the header text shown above the grid, "YYYY MM".
func (m Month) Label() string {
	return fmt.Sprintf("%04d %02d", m.Year, int(m.Month))
}

// ClampPicker limits the year to the picker range.
func (m Month) ClampPicker() Month {
	switch {
	case m.Year < MinPickerYear:
		m.Year = MinPickerYear
	case m.Year > MaxPickerYear:
		m.Year = MaxPickerYear
	}
	return m
}

// MarshalText implements encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(b []byte) error {
	p, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = p
	return nil
}
