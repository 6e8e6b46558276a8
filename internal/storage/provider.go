// Package storage defines the media file store abstraction.
package storage

import "time"

// FileMeta describes a stored media file.
type FileMeta struct {
	Path     string
	Checksum string
	Size     int64
	ModTime  time.Time
}

// Provider is the interface for media file operations. All paths are
// relative to the media root.
type Provider interface {
	// List returns metadata for every regular file under the media root.
	List() ([]FileMeta, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Abs resolves path to an absolute location for external tools
	// (the duration prober shells out to ffprobe with it).
	Abs(path string) (string, error)
}
