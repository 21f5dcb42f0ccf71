package view

import (
	"fmt"
	"strings"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/events"
	"github.com/starford/foliocal/internal/grid"
	"github.com/starford/foliocal/internal/models"
)

// NavigationState is what the user is looking at. It lives as long as one
// view and is never persisted.
type NavigationState struct {
	Month  calendar.Month
	Folder string
	Tags   events.TagSet
}

// Snapshot is a fully computed month view.
type Snapshot struct {
	Month      calendar.Month `json:"month"`
	Label      string         `json:"label"`
	Folder     string         `json:"folder"`
	ActiveTags []string       `json:"active_tags"`
	AllTags    []string       `json:"all_tags"`
	Weekdays   []string       `json:"weekdays"`
	Cells      []grid.Cell    `json:"cells"`
	// Total counts events in the folder before tag filtering.
	Total int `json:"total"`
}

// Cell returns the cell for d, if the grid shows it.
func (s Snapshot) Cell(d calendar.Day) (grid.Cell, bool) {
	for _, c := range s.Cells {
		if c.Date == d {
			return c, true
		}
	}
	return grid.Cell{}, false
}

// Compute runs extraction, filtering and grid building for one state.
func Compute(records []models.NoteRecord, s Settings, st NavigationState, today calendar.Day) Snapshot {
	s = s.withDefaults()
	all := events.Extract(records, events.Options{
		ScopeFolder:       st.Folder,
		DateField:         s.DateField,
		DisplayProperties: s.DisplayProperties,
	})
	filtered := events.FilterByTags(all, st.Tags)

	active := st.Tags.Sorted()
	return Snapshot{
		Month:      st.Month,
		Label:      st.Month.Label(),
		Folder:     st.Folder,
		ActiveTags: active,
		AllTags:    events.AllTags(all),
		Weekdays:   s.StartOfWeek.Labels(),
		Cells:      grid.Build(st.Month, filtered, s.StartOfWeek, today),
		Total:      len(all),
	}
}

// DayNoteName is the file name of the note for d.
func DayNoteName(d calendar.Day) string {
	return d.String() + ".md"
}

// DayNotePath joins folder and the day note name.
func DayNotePath(folder string, d calendar.Day) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return DayNoteName(d)
	}
	return folder + "/" + DayNoteName(d)
}

// DayNoteContent is the body of a freshly created day note: frontmatter
// holding only the date field.
func DayNoteContent(dateField string, d calendar.Day) string {
	return fmt.Sprintf("---\n%s: %s\n---\n\n", dateField, d)
}
