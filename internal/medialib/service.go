// Package medialib implements the media library: imports, asynchronous
// duration resolution via the external decoder, and reconciliation with
// the media directory.
package medialib

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rosenlund/cutline/internal/library"
	"github.com/rosenlund/cutline/internal/mediakind"
	"github.com/rosenlund/cutline/internal/models"
	"github.com/rosenlund/cutline/internal/probe"
	"github.com/rosenlund/cutline/internal/storage"
)

// Event kinds emitted by the library.
const (
	EventAdded    = "media.added"
	EventResolved = "media.resolved"
	EventRemoved  = "media.removed"
)

const resolveTimeout = 30 * time.Second

// EventCallback is called after a library mutation.
type EventCallback func(kind string, item models.MediaItem)

// Library owns imported media item records and resolves durations
// asynchronously through the Prober.
type Library struct {
	store   storage.Provider
	catalog library.Catalog
	prober  probe.Prober
	logger  *slog.Logger
	cb      EventCallback
}

// New creates a media library. cb may be nil.
func New(store storage.Provider, catalog library.Catalog, prober probe.Prober, logger *slog.Logger, cb EventCallback) *Library {
	return &Library{store: store, catalog: catalog, prober: prober, logger: logger, cb: cb}
}

// ImportUpload stores uploaded content under a unique name and catalogs
// it. The item is visible immediately with duration 0; for video and
// audio kinds a single asynchronous probe resolves the real duration.
func (l *Library) ImportUpload(filename, contentType string, data []byte) (models.MediaItem, error) {
	name := filepath.Base(filename)
	if name == "" || name == "." {
		return models.MediaItem{}, fmt.Errorf("medialib: invalid filename %q", filename)
	}

	id := uuid.NewString()
	rel := id + "_" + name
	if err := l.store.Write(rel, data); err != nil {
		return models.MediaItem{}, fmt.Errorf("medialib: store upload: %w", err)
	}

	item := models.MediaItem{
		ID:        id,
		Name:      name,
		Kind:      mediakind.Detect(contentType, name),
		Path:      rel,
		Checksum:  storage.Checksum(data),
		CreatedAt: time.Now().UTC(),
	}
	if err := l.catalog.Upsert(item); err != nil {
		return models.MediaItem{}, err
	}
	l.emit(EventAdded, item)
	l.resolveAsync(item)
	return item, nil
}

// ImportPath catalogs a file that already lives inside the media
// directory (inbox drops, startup sync). Returns the item and whether a
// catalog mutation happened; unchanged files are a no-op.
func (l *Library) ImportPath(rel string) (models.MediaItem, bool, error) {
	data, err := l.store.Read(rel)
	if err != nil {
		return models.MediaItem{}, false, err
	}
	cs := storage.Checksum(data)

	item := models.MediaItem{
		ID:        uuid.NewString(),
		Name:      displayName(rel),
		Kind:      mediakind.FromFilename(rel),
		Path:      rel,
		Checksum:  cs,
		CreatedAt: time.Now().UTC(),
	}
	if existing, err := l.catalog.ByPath(rel); err == nil {
		if existing.Checksum == cs {
			return *existing, false, nil
		}
		// Same path, new content: keep the id, re-resolve the duration.
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	}

	if err := l.catalog.Upsert(item); err != nil {
		return models.MediaItem{}, false, err
	}
	l.emit(EventAdded, item)
	l.resolveAsync(item)
	return item, true, nil
}

// Get returns a media item by id.
func (l *Library) Get(id string) (models.MediaItem, error) {
	item, err := l.catalog.Get(id)
	if err != nil {
		return models.MediaItem{}, err
	}
	return *item, nil
}

// List returns all media items, optionally filtered by kind.
func (l *Library) List(kind string) ([]models.MediaItem, error) {
	items, err := l.catalog.List(kind)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.MediaItem{}
	}
	return items, nil
}

// Clear removes every item and its stored file. This is the only way
// items leave the library.
func (l *Library) Clear() error {
	items, err := l.catalog.List("")
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := l.store.Delete(item.Path); err != nil {
			l.logger.Warn("clear: delete file failed",
				slog.String("path", item.Path), slog.String("error", err.Error()))
		}
		l.emit(EventRemoved, item)
	}
	return l.catalog.DeleteAll()
}

// Remove drops a catalog row whose backing file vanished from disk.
func (l *Library) Remove(rel string) {
	item, err := l.catalog.ByPath(rel)
	if err != nil {
		return
	}
	if err := l.catalog.DeleteByPath(rel); err != nil {
		l.logger.Warn("remove: catalog delete failed",
			slog.String("path", rel), slog.String("error", err.Error()))
		return
	}
	l.emit(EventRemoved, *item)
}

// resolveAsync fires a single metadata probe for video and audio items.
// Failures are logged and leave the duration at 0 permanently: there is
// no retry and no error surfaced to the caller.
func (l *Library) resolveAsync(item models.MediaItem) {
	if item.Kind != models.MediaVideo && item.Kind != models.MediaAudio {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		abs, err := l.store.Abs(item.Path)
		if err != nil {
			l.logger.Warn("resolve: bad path", slog.String("path", item.Path), slog.String("error", err.Error()))
			return
		}
		seconds, err := l.prober.ResolveDuration(ctx, abs)
		if err != nil {
			l.logger.Warn("resolve: probe failed",
				slog.String("id", item.ID),
				slog.String("path", item.Path),
				slog.String("error", err.Error()))
			return
		}
		if err := l.catalog.SetDuration(item.ID, seconds); err != nil {
			l.logger.Warn("resolve: catalog update failed",
				slog.String("id", item.ID), slog.String("error", err.Error()))
			return
		}
		item.DurationSeconds = seconds
		l.logger.Debug("resolve: duration set",
			slog.String("id", item.ID), slog.Float64("seconds", seconds))
		l.emit(EventResolved, item)
	}()
}

func (l *Library) emit(kind string, item models.MediaItem) {
	if l.cb != nil {
		l.cb(kind, item)
	}
}

// displayName strips the uuid prefix that ImportUpload prepends, so
// re-imported files keep their human-readable name.
func displayName(rel string) string {
	name := filepath.Base(rel)
	if i := strings.Index(name, "_"); i > 0 {
		if _, err := uuid.Parse(name[:i]); err == nil {
			return name[i+1:]
		}
	}
	return name
}
