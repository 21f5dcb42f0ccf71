// Package events turns note frontmatter into calendar events and filters
// them by tag.
package events

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/models"
)

// Frontmatter keys read besides the configured date and display fields.
const (
	TitleKey = "title"
	IconKey  = "icon"
	TagsKey  = "tags"
)

// Event is a note placed on a calendar day.
type Event struct {
	File       string       `json:"file"`
	Title      string       `json:"title"`
	Date       calendar.Day `json:"date"`
	Icon       string       `json:"icon,omitempty"`
	Properties Properties   `json:"properties"`
}

// Tags returns the event's tags property as strings. A scalar tag is a
// single-element list.
func (e Event) Tags() []string {
	v, ok := e.Properties.Get(TagsKey)
	if !ok {
		return nil
	}
	return v.Strings()
}

// Options controls extraction.
type Options struct {
	// ScopeFolder restricts extraction to paths starting with it. The test
	// is a raw prefix match: "Notes" also matches "Notes2/a.md".
	ScopeFolder string
	// DateField names the frontmatter key holding the event date.
	DateField string
	// DisplayProperties lists the frontmatter keys copied onto the event.
	DisplayProperties []string
	// Location is used for date strings without a zone. Defaults to
	// time.Local.
	Location *time.Location
}

// Extract maps records to events in input order. Records outside the scope
// folder, without a date, or with an unparseable date are skipped.
func Extract(records []models.NoteRecord, opts Options) []Event {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	out := make([]Event, 0, len(records))
	for _, rec := range records {
		if !strings.HasPrefix(rec.Path, opts.ScopeFolder) {
			continue
		}
		raw, ok := rec.Frontmatter[opts.DateField]
		if !ok {
			continue
		}
		day, ok := parseDate(raw, loc)
		if !ok {
			continue
		}

		ev := Event{
			File:  rec.Path,
			Title: titleOf(rec),
			Date:  day,
			Icon:  iconOf(rec.Frontmatter),
		}
		for _, key := range opts.DisplayProperties {
			if v, ok := normalize(rec.Frontmatter[key]); ok {
				ev.Properties = append(ev.Properties, Property{Key: key, Value: v})
			}
		}
		out = append(out, ev)
	}
	return out
}

// parseDate accepts time.Time values and strings understood by dateparse.
// Empty and nil values, numbers and unparseable strings are rejected.
func parseDate(raw any, loc *time.Location) (calendar.Day, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return calendar.Day{}, false
		}
		return calendar.DayOf(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return calendar.Day{}, false
		}
		if d, err := calendar.ParseDay(s); err == nil {
			return d, true
		}
		t, err := dateparse.ParseIn(s, loc)
		if err != nil || t.IsZero() {
			return calendar.Day{}, false
		}
		return calendar.DayOf(t), true
	}
	return calendar.Day{}, false
}

func titleOf(rec models.NoteRecord) string {
	if v, ok := normalize(rec.Frontmatter[TitleKey]); ok {
		if t := v.Text(); t != "" {
			return t
		}
	}
	return BaseName(rec.Path)
}

func iconOf(fm map[string]any) string {
	switch v := fm[IconKey].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// BaseName returns the file name of p without its extension.
func BaseName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
