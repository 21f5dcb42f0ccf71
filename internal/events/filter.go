package events

import "sort"

// TagSet is the set of active tag filters.
type TagSet map[string]struct{}

// NewTagSet returns a set holding tags.
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Toggle adds tag when absent and removes it when present.
func (s TagSet) Toggle(tag string) {
	if s.Has(tag) {
		delete(s, tag)
		return
	}
	s[tag] = struct{}{}
}

// Sorted returns the members in lexicographic order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s TagSet) Clone() TagSet {
	c := make(TagSet, len(s))
	for t := range s {
		c[t] = struct{}{}
	}
	return c
}

// FilterByTags keeps events sharing at least one tag with active. With no
// active tags the input is returned as is. Events without tags never pass
// an active filter.
func FilterByTags(evs []Event, active TagSet) []Event {
	if len(active) == 0 {
		return evs
	}
	out := make([]Event, 0, len(evs))
	for _, ev := range evs {
		for _, t := range ev.Tags() {
			if active.Has(t) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

// AllTags returns every tag used by evs, deduplicated and sorted.
func AllTags(evs []Event) []string {
	seen := make(TagSet)
	for _, ev := range evs {
		for _, t := range ev.Tags() {
			seen[t] = struct{}{}
		}
	}
	return seen.Sorted()
}
