package calendar

import (
	"testing"
	"time"
)

func TestDaysInGridFor_February2024Monday(t *testing.T) {
	days := DaysInGridFor(Month{Year: 2024, Month: time.February}, Monday)
	if len(days) != GridSize {
		t.Fatalf("len = %d, want %d", len(days), GridSize)
	}
	if got := days[0].String(); got != "2024-01-29" {
		t.Errorf("first = %s, want 2024-01-29", got)
	}
	if got := days[3].String(); got != "2024-02-01" {
		t.Errorf("days[3] = %s, want 2024-02-01", got)
	}
	if got := days[41].String(); got != "2024-03-10" {
		t.Errorf("last = %s, want 2024-03-10", got)
	}
}

func TestDaysInGridFor_SundayStart(t *testing.T) {
	// 2024-09-01 is a Sunday.
	days := DaysInGridFor(Month{Year: 2024, Month: time.September}, Sunday)
	if got := days[0].String(); got != "2024-09-01" {
		t.Errorf("first = %s, want 2024-09-01", got)
	}
	days = DaysInGridFor(Month{Year: 2024, Month: time.September}, Monday)
	if got := days[6].String(); got != "2024-09-01" {
		t.Errorf("monday grid days[6] = %s, want 2024-09-01", got)
	}
}

func TestDaysInGridFor_Invariants(t *testing.T) {
	for _, ws := range []WeekStart{Monday, Sunday} {
		for y := 1999; y <= 2026; y++ {
			for mo := time.January; mo <= time.December; mo++ {
				m := Month{Year: y, Month: mo}
				days := DaysInGridFor(m, ws)
				if len(days) != GridSize {
					t.Fatalf("%s %s: len = %d", m, ws, len(days))
				}
				for i := 1; i < len(days); i++ {
					if days[i] != days[i-1].AddDays(1) {
						t.Fatalf("%s %s: days[%d]=%s not after %s", m, ws, i, days[i], days[i-1])
					}
				}
				if ws.Offset(days[0].Weekday()) != 0 {
					t.Fatalf("%s %s: first cell weekday %s", m, ws, days[0].Weekday())
				}
				found := false
				for _, d := range days[:7] {
					if d == m.First() {
						found = true
					}
				}
				if !found {
					t.Fatalf("%s %s: first of month not in first row", m, ws)
				}
			}
		}
	}
}

func TestDaysInGridFor_LeapAndYearBoundary(t *testing.T) {
	days := DaysInGridFor(Month{Year: 2025, Month: time.January}, Monday)
	// 2025-01-01 is a Wednesday.
	if got := days[0].String(); got != "2024-12-30" {
		t.Errorf("first = %s, want 2024-12-30", got)
	}
	if n := (Month{Year: 2024, Month: time.February}).Days(); n != 29 {
		t.Errorf("Feb 2024 days = %d, want 29", n)
	}
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2024, 3, 15, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	if !IsSameDay(a, b) {
		t.Error("same date at different times should match")
	}
	if IsSameDay(b, c) {
		t.Error("adjacent days should not match")
	}
}

func TestMonth_Navigation(t *testing.T) {
	jan := Month{Year: 2024, Month: time.January}
	if got := jan.Prev(); got != (Month{Year: 2023, Month: time.December}) {
		t.Errorf("Prev = %v", got)
	}
	dec := Month{Year: 2023, Month: time.December}
	if got := dec.Next(); got != jan {
		t.Errorf("Next = %v", got)
	}
	if got := NewMonth(2024, 13); got != (Month{Year: 2025, Month: time.January}) {
		t.Errorf("NewMonth(2024, 13) = %v", got)
	}
	if got := jan.Label(); got != "2024 01" {
		t.Errorf("Label = %q", got)
	}
}

func TestParseMonthAndDay(t *testing.T) {
	m, err := ParseMonth("2024-02")
	if err != nil || m != (Month{Year: 2024, Month: time.February}) {
		t.Fatalf("ParseMonth = %v, %v", m, err)
	}
	if _, err := ParseMonth("2024-13"); err == nil {
		t.Error("expected error for month 13")
	}
	d, err := ParseDay("2024-03-15")
	if err != nil || d != NewDay(2024, time.March, 15) {
		t.Fatalf("ParseDay = %v, %v", d, err)
	}
	if _, err := ParseDay("15/03/2024"); err == nil {
		t.Error("expected error for non-canonical layout")
	}
}

func TestClampPicker(t *testing.T) {
	if got := (Month{Year: 1850, Month: time.May}).ClampPicker(); got.Year != MinPickerYear {
		t.Errorf("low clamp = %v", got)
	}
	if got := (Month{Year: 2200, Month: time.May}).ClampPicker(); got.Year != MaxPickerYear {
		t.Errorf("high clamp = %v", got)
	}
}

func TestParseWeekStart(t *testing.T) {
	if ws, err := ParseWeekStart(""); err != nil || ws != Monday {
		t.Errorf("empty = %v, %v", ws, err)
	}
	if _, err := ParseWeekStart("friday"); err == nil {
		t.Error("expected error for friday")
	}
	if got := Sunday.Labels()[0]; got != "Sun" {
		t.Errorf("sunday labels start with %q", got)
	}
}
