package view

import (
	"context"

	"github.com/starford/foliocal/internal/events"
	"github.com/starford/foliocal/internal/preview"
)

// PreviewStatus is the load state of a hover preview.
type PreviewStatus string

const (
	PreviewLoading PreviewStatus = "loading"
	PreviewReady   PreviewStatus = "ready"
	PreviewFailed  PreviewStatus = "failed"
)

// Preview is the content of the hover panel.
type Preview struct {
	Path    string        `json:"path"`
	Title   string        `json:"title"`
	Status  PreviewStatus `json:"status"`
	Excerpt string        `json:"excerpt"`
	Trigger preview.Rect  `json:"-"`
}

// LoadPreview reads path synchronously. A read error yields a failed
// preview rather than an error.
func LoadPreview(ctx context.Context, store NoteStore, path string) Preview {
	p := Preview{Path: path, Title: events.BaseName(path)}
	text, err := store.Read(ctx, path)
	if err != nil {
		p.Status = PreviewFailed
		return p
	}
	p.Status = PreviewReady
	p.Excerpt = preview.Excerpt(text)
	return p
}
