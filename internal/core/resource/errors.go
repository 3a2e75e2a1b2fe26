package resource

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrTypeMismatch = errors.New("resource type mismatch")
	ErrNoPath       = errors.New("resource has no path")
	ErrClosed       = errors.New("store is closed")
)
