package api

import (
	"github.com/starford/foliocal/internal/noteservice"
	"github.com/starford/foliocal/internal/preview"
	"github.com/starford/foliocal/internal/view"
)

// Snapshot is a computed month view (aliased from the view layer).
type Snapshot = view.Snapshot

// Preview is a hover preview payload (aliased from the view layer).
type Preview = view.Preview

// DayNote is the create-or-open result (aliased from the domain layer).
type DayNote = noteservice.DayNote

// TagsResponse lists the tags available in a folder.
type TagsResponse struct {
	Tags []string `json:"tags" validate:"required"`
}

// FoldersResponse lists the vault root ("") and its folders.
type FoldersResponse struct {
	Folders []string `json:"folders" validate:"required"`
}

// OpenNoteRequest is the request body for opening a note.
type OpenNoteRequest struct {
	Path string `json:"path" example:"Journal/2024-03-15.md" validate:"required"`
}

// PlacePreviewRequest describes a trigger element and the preview to
// position next to it, in viewport pixels.
type PlacePreviewRequest struct {
	Trigger  preview.Rect `json:"trigger" validate:"required"`
	Preview  preview.Size `json:"preview" validate:"required"`
	Viewport preview.Size `json:"viewport" validate:"required"`
}
