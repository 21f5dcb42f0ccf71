package view

import (
	"context"

	"github.com/starford/foliocal/internal/models"
)

// NoteSource lists every note with its frontmatter.
type NoteSource interface {
	ListNotes(ctx context.Context) ([]models.NoteRecord, error)
}

// NoteStore performs file operations on notes by vault-relative path.
type NoteStore interface {
	Exists(ctx context.Context, path string) (bool, error)
	// Create writes a new note and fails with apperr.ErrAlreadyExists when
	// the path is taken.
	Create(ctx context.Context, path, content string) (models.NoteRecord, error)
	Read(ctx context.Context, path string) (string, error)
}

// Host is everything the controller needs from the note store.
type Host interface {
	NoteSource
	NoteStore
}

// Opener hands a note to the user's editor.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, path string) error

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, path string) error { return f(ctx, path) }

// NoopOpener ignores open requests. Headless callers use it and return the
// path to their client instead.
var NoopOpener Opener = OpenerFunc(func(context.Context, string) error { return nil })

// Change kinds delivered to Controller.Notify.
const (
	ChangeCreated  = "created"
	ChangeModified = "modified"
	ChangeDeleted  = "deleted"
	ChangeRenamed  = "renamed"
	ChangeMetadata = "metadata"
)
