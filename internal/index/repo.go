package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/foliocal/internal/apperr"
	"github.com/starford/foliocal/internal/models"
)

// NoteRow represents a row in the notes table.
type NoteRow struct {
	Path        string
	Title       string
	Checksum    string
	FMChecksum  string
	Frontmatter map[string]any
	UpdatedAt   time.Time
}

// UpsertNote inserts or replaces a note.
func (db *DB) UpsertNote(n NoteRow) error {
	fm := n.Frontmatter
	if fm == nil {
		fm = map[string]any{}
	}
	fmJSON, err := json.Marshal(fm)
	if err != nil {
		return fmt.Errorf("index: encode frontmatter %s: %w", n.Path, err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO notes (path, title, checksum, fm_checksum, frontmatter, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title       = excluded.title,
			checksum    = excluded.checksum,
			fm_checksum = excluded.fm_checksum,
			frontmatter = excluded.frontmatter,
			updated_at  = excluded.updated_at
	`, n.Path, n.Title, n.Checksum, n.FMChecksum, string(fmJSON), n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert note: %w", err)
	}
	return nil
}

// DeleteNote removes a note.
func (db *DB) DeleteNote(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM notes WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete note: %w", err)
	}
	return nil
}

// GetChecksum returns the stored checksum for a note, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM notes WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// GetNote returns one indexed note or apperr.ErrNotFound.
func (db *DB) GetNote(path string) (*NoteRow, error) {
	var (
		n      NoteRow
		fmJSON string
	)
	err := db.conn.QueryRow(`
		SELECT path, title, checksum, fm_checksum, frontmatter, updated_at
		FROM notes WHERE path = ?`, path).
		Scan(&n.Path, &n.Title, &n.Checksum, &n.FMChecksum, &fmJSON, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: note %s: %w", path, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get note: %w", err)
	}
	if err := json.Unmarshal([]byte(fmJSON), &n.Frontmatter); err != nil {
		return nil, fmt.Errorf("index: decode frontmatter %s: %w", path, err)
	}
	return &n, nil
}

// Records returns every note with its frontmatter, ordered by path.
func (db *DB) Records(ctx context.Context) ([]models.NoteRecord, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT path, frontmatter FROM notes ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("index: records: %w", err)
	}
	defer rows.Close()

	var out []models.NoteRecord
	for rows.Next() {
		var (
			rec    models.NoteRecord
			fmJSON string
		)
		if err := rows.Scan(&rec.Path, &fmJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(fmJSON), &rec.Frontmatter); err != nil {
			return nil, fmt.Errorf("index: decode frontmatter %s: %w", rec.Path, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AllChecksums returns path → checksum for every indexed note.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
