package medialib

import (
	"log/slog"

	"github.com/rosenlund/cutline/internal/models"
)

// Sync walks the media directory and brings the catalog up to date:
//   - new or changed files are imported
//   - rows whose files vanished from disk are removed
func (l *Library) Sync() error {
	metas, err := l.store.List()
	if err != nil {
		return err
	}

	cataloged, err := l.catalog.AllPaths()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if cataloged[m.Path] == m.Checksum {
			continue
		}
		if kindOfPath(m.Path) == models.MediaUnknown {
			continue
		}
		if _, _, err := l.ImportPath(m.Path); err != nil {
			l.logger.Warn("sync: import failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			l.logger.Debug("sync: imported", slog.String("path", m.Path))
		}
	}

	// Remove stale rows.
	for p := range cataloged {
		if _, ok := disk[p]; !ok {
			l.Remove(p)
			l.logger.Debug("sync: removed stale", slog.String("path", p))
		}
	}

	return nil
}
