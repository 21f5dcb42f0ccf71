// Package icsexport renders calendar events as an iCalendar feed.
package icsexport

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/starford/foliocal/internal/checksum"
	"github.com/starford/foliocal/internal/events"
)

// ProductID identifies the generator in exported feeds.
const ProductID = "-//foliocal//calendar export//EN"

// UID returns the stable identifier of the event for path.
func UID(path string) string {
	return checksum.Short([]byte(path), 16) + "@foliocal"
}

// Build returns a calendar with one all-day VEVENT per event. stamp is
// written as DTSTAMP on every event.
func Build(evs []events.Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, ev := range evs {
		start := ev.Date.Time()
		vev := cal.AddEvent(UID(ev.File))
		vev.SetDtStampTime(stamp.UTC())
		vev.SetAllDayStartAt(start)
		vev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		vev.SetSummary(summary(ev))
		vev.SetDescription(ev.File)
		for _, tag := range ev.Tags() {
			vev.AddProperty(ical.ComponentPropertyCategories, tag)
		}
	}
	return cal
}

// Serialize renders evs as an iCalendar document.
func Serialize(evs []events.Event, stamp time.Time) string {
	return Build(evs, stamp).Serialize()
}

func summary(ev events.Event) string {
	if ev.Icon == "" {
		return ev.Title
	}
	return ev.Icon + " " + ev.Title
}
