package medialib

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/rosenlund/cutline/internal/mediakind"
	"github.com/rosenlund/cutline/internal/models"
)

// Watch starts an fsnotify watcher on the media directory and imports
// files dropped into it until ctx is cancelled. This is the "drop" path
// of the import boundary: copying a supported file into the directory is
// equivalent to importing it through the API.
func Watch(ctx context.Context, l *Library, root string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}

	logger.Info("media watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("media watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			rel, relErr := filepath.Rel(root, ev.Name)
			if relErr != nil {
				continue
			}
			// Skip atomic-write temp files and anything not media-shaped.
			if strings.HasPrefix(filepath.Base(rel), ".cutline-tmp-") {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				if info, statErr := os.Stat(ev.Name); statErr != nil || info.IsDir() {
					continue
				}
				if kindOfPath(rel) == models.MediaUnknown {
					continue
				}
				item, changed, impErr := l.ImportPath(rel)
				if impErr != nil {
					logger.Warn("media watcher: import failed",
						slog.String("path", rel), slog.String("error", impErr.Error()))
					continue
				}
				if changed {
					logger.Debug("media watcher: imported",
						slog.String("path", rel), slog.String("id", item.ID))
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				l.Remove(rel)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("media watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func kindOfPath(rel string) models.MediaKind {
	return mediakind.FromFilename(rel)
}
