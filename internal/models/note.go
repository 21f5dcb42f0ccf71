// Package models defines the domain types shared across foliocal.
package models

import "time"

// NoteRecord is a note as seen by the calendar: its vault-relative path and
// decoded frontmatter.
type NoteRecord struct {
	Path        string         `json:"path"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
}

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
