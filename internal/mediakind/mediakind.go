// Package mediakind classifies imported files into media kinds.
package mediakind

import (
	"path/filepath"
	"strings"

	"github.com/rosenlund/cutline/internal/models"
)

// Extension fallbacks for imports that arrive without a usable MIME type
// (inbox drops, CLI imports).
var extKinds = map[string]models.MediaKind{
	".mp4":  models.MediaVideo,
	".avi":  models.MediaVideo,
	".mov":  models.MediaVideo,
	".mkv":  models.MediaVideo,
	".webm": models.MediaVideo,
	".mp3":  models.MediaAudio,
	".wav":  models.MediaAudio,
	".aac":  models.MediaAudio,
	".flac": models.MediaAudio,
	".jpg":  models.MediaImage,
	".jpeg": models.MediaImage,
	".png":  models.MediaImage,
	".gif":  models.MediaImage,
	".bmp":  models.MediaImage,
}

// FromMIME maps a MIME type to a media kind by prefix check.
func FromMIME(mimeType string) models.MediaKind {
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return models.MediaVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return models.MediaAudio
	case strings.HasPrefix(mimeType, "image/"):
		return models.MediaImage
	default:
		return models.MediaUnknown
	}
}

// FromFilename maps a file extension to a media kind.
func FromFilename(name string) models.MediaKind {
	ext := strings.ToLower(filepath.Ext(name))
	if k, ok := extKinds[ext]; ok {
		return k
	}
	return models.MediaUnknown
}

// Detect prefers the MIME prefix and falls back to the file extension.
func Detect(mimeType, filename string) models.MediaKind {
	if k := FromMIME(mimeType); k != models.MediaUnknown {
		return k
	}
	return FromFilename(filename)
}
