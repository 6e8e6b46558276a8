package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidTrack = errors.New("track index out of range")
	ErrDragActive   = errors.New("drag already in progress")
)
