// Package testutil provides shared test helpers for setting up vaults and databases.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/foliocal/internal/index"
	"github.com/starford/foliocal/internal/storage"
	"github.com/starford/foliocal/internal/vault"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "foliocal-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// WriteNotes writes files (vault path → content) under dir.
func WriteNotes(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// Env is a populated, indexed vault.
type Env struct {
	Dir   string
	Store storage.Provider
	DB    *index.DB
	Vault *vault.Vault
}

// NewEnv writes files into a fresh vault and indexes them.
func NewEnv(t *testing.T, files map[string]string) *Env {
	t.Helper()
	dir, store := TestVault(t)
	WriteNotes(t, dir, files)
	db := TestDB(t)
	if err := index.Sync(db, store, Logger(), nil); err != nil {
		t.Fatal(err)
	}
	return &Env{Dir: dir, Store: store, DB: db, Vault: vault.New(store, db, Logger())}
}
