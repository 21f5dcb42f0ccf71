package index

import (
	"errors"
	"log/slog"
	"time"

	"github.com/starford/foliocal/internal/apperr"
	"github.com/starford/foliocal/internal/checksum"
	"github.com/starford/foliocal/internal/parser"
	"github.com/starford/foliocal/internal/storage"
)

// Change kinds passed to EventCallback.
const (
	KindCreated  = "created"
	KindModified = "modified"
	KindDeleted  = "deleted"
	KindRenamed  = "renamed"
	KindMetadata = "metadata"
)

// EventCallback is called after an index change with one of the Kind
// constants and the vault-relative path.
type EventCallback func(kind string, path string)

func (cb EventCallback) emit(kind, path string) {
	if cb != nil {
		cb(kind, path)
	}
}

// Sync walks the vault and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
//
// cb, if non-nil, is told about every change.
func Sync(db *DB, store storage.Provider, logger *slog.Logger, cb EventCallback) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		prev, known := checksums[m.Path]
		if prev == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		fmChanged, err := indexFile(db, m.Path, data)
		if err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("sync: indexed", slog.String("path", m.Path))
		switch {
		case !known:
			cb.emit(KindCreated, m.Path)
		case fmChanged:
			cb.emit(KindMetadata, m.Path)
		default:
			cb.emit(KindModified, m.Path)
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteNote(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
				cb.emit(KindDeleted, p)
			}
		}
	}

	return nil
}

// indexFile parses data and upserts it into the DB. fmChanged reports
// whether the frontmatter differs from the previously indexed version.
func indexFile(db *DB, path string, data []byte) (fmChanged bool, err error) {
	res, err := parser.Parse(data)
	if err != nil {
		return false, err
	}

	row := NoteRow{
		Path:        path,
		Title:       res.Title,
		Checksum:    checksum.Sum(data),
		FMChecksum:  checksum.Sum(res.RawFrontmatter),
		Frontmatter: res.Frontmatter,
		UpdatedAt:   time.Now().UTC(),
	}

	prev, err := db.GetNote(path)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		fmChanged = true
	case err != nil:
		return false, err
	default:
		fmChanged = prev.FMChecksum != row.FMChecksum
	}

	return fmChanged, db.UpsertNote(row)
}

// IndexNote parses and upserts a single note.
func IndexNote(db *DB, path string, data []byte) error {
	_, err := indexFile(db, path, data)
	return err
}
