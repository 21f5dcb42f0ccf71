// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/foliocal/internal/models"

// Provider is the interface for vault file operations.
type Provider interface {
	// List returns metadata for every note under dir (relative to vault root).
	List(dir string) ([]models.NoteMetadata, error)
	// Folders returns the root ("") and every sub-directory.
	Folders() ([]string, error)
	// Exists reports whether a file exists at path.
	Exists(path string) (bool, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Create writes a new file at path and fails with
	// apperr.ErrAlreadyExists when it is taken.
	Create(path string, content []byte) error
}

var _ Provider = (*FS)(nil)
