// Package vault serves the calendar's note operations from the file
// store and the metadata index.
package vault

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/foliocal/internal/index"
	"github.com/starford/foliocal/internal/models"
	"github.com/starford/foliocal/internal/parser"
	"github.com/starford/foliocal/internal/storage"
	"github.com/starford/foliocal/internal/view"
)

// Vault implements view.Host on top of storage and the index.
type Vault struct {
	store  storage.Provider
	db     *index.DB
	logger *slog.Logger
}

var _ view.Host = (*Vault)(nil)

// New returns a Vault.
func New(store storage.Provider, db *index.DB, logger *slog.Logger) *Vault {
	return &Vault{store: store, db: db, logger: logger}
}

// ListNotes returns every indexed note with its frontmatter.
func (v *Vault) ListNotes(ctx context.Context) ([]models.NoteRecord, error) {
	return v.db.Records(ctx)
}

// Exists reports whether a note file exists at path.
func (v *Vault) Exists(_ context.Context, path string) (bool, error) {
	return v.store.Exists(path)
}

// Create writes a new note and indexes it right away so the next listing
// sees it without waiting for the watcher.
func (v *Vault) Create(_ context.Context, path, content string) (models.NoteRecord, error) {
	if err := v.store.Create(path, []byte(content)); err != nil {
		return models.NoteRecord{}, err
	}
	rec := models.NoteRecord{Path: path}
	if res, err := parser.Parse([]byte(content)); err == nil {
		rec.Frontmatter = res.Frontmatter
	}
	if err := index.IndexNote(v.db, path, []byte(content)); err != nil {
		v.logger.Warn("vault: index after create failed", slog.String("path", path), slog.String("error", err.Error()))
	}
	v.logger.Info("vault: note created", slog.String("path", path))
	return rec, nil
}

// Read returns the note's text.
func (v *Vault) Read(_ context.Context, path string) (string, error) {
	data, err := v.store.Read(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Folders lists the root and every folder, for scope pickers.
func (v *Vault) Folders(_ context.Context) ([]string, error) {
	folders, err := v.store.Folders()
	if err != nil {
		return nil, fmt.Errorf("vault: folders: %w", err)
	}
	return folders, nil
}

// Resync reconciles the index with the disk.
func (v *Vault) Resync(cb index.EventCallback) error {
	return index.Sync(v.db, v.store, v.logger, cb)
}
