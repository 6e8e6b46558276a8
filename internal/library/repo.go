package library

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rosenlund/cutline/internal/apperr"
	"github.com/rosenlund/cutline/internal/models"
)

// Upsert inserts or replaces a media item row.
func (db *DB) Upsert(item models.MediaItem) error {
	_, err := db.conn.Exec(`
		INSERT INTO media_items (id, name, kind, duration_seconds, path, checksum, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name             = excluded.name,
			kind             = excluded.kind,
			duration_seconds = excluded.duration_seconds,
			path             = excluded.path,
			checksum         = excluded.checksum
	`, item.ID, item.Name, string(item.Kind), item.DurationSeconds, item.Path, item.Checksum, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("library: upsert item: %w", err)
	}
	return nil
}

// Get returns a media item by id.
func (db *DB) Get(id string) (*models.MediaItem, error) {
	row := db.conn.QueryRow(`
		SELECT id, name, kind, duration_seconds, path, checksum, created_at
		FROM media_items WHERE id = ?
	`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("library: get item: %w", err)
	}
	return item, nil
}

// ByPath returns a media item by its storage path.
func (db *DB) ByPath(path string) (*models.MediaItem, error) {
	row := db.conn.QueryRow(`
		SELECT id, name, kind, duration_seconds, path, checksum, created_at
		FROM media_items WHERE path = ?
	`, path)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("library: get by path: %w", err)
	}
	return item, nil
}

// List returns all media items ordered by import time, optionally
// filtered by kind.
func (db *DB) List(kind string) ([]models.MediaItem, error) {
	query := `
		SELECT id, name, kind, duration_seconds, path, checksum, created_at
		FROM media_items`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("library: list: %w", err)
	}
	defer rows.Close()

	var out []models.MediaItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

// SetDuration writes the resolved duration for an item.
func (db *DB) SetDuration(id string, seconds float64) error {
	res, err := db.conn.Exec(`UPDATE media_items SET duration_seconds = ? WHERE id = ?`, seconds, id)
	if err != nil {
		return fmt.Errorf("library: set duration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteByPath removes the item whose file lived at path. Missing rows
// are not an error.
func (db *DB) DeleteByPath(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM media_items WHERE path = ?`, path); err != nil {
		return fmt.Errorf("library: delete by path: %w", err)
	}
	return nil
}

// DeleteAll clears the catalog (library clear).
func (db *DB) DeleteAll() error {
	if _, err := db.conn.Exec(`DELETE FROM media_items`); err != nil {
		return fmt.Errorf("library: delete all: %w", err)
	}
	return nil
}

// AllPaths returns every cataloged path mapped to its checksum.
func (db *DB) AllPaths() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM media_items`)
	if err != nil {
		return nil, fmt.Errorf("library: all paths: %w", err)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.MediaItem, error) {
	var item models.MediaItem
	var kind string
	if err := s.Scan(&item.ID, &item.Name, &kind, &item.DurationSeconds,
		&item.Path, &item.Checksum, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.Kind = models.MediaKind(kind)
	return &item, nil
}
