// Package resource loads, caches and saves the persistent assets of the
// engine (scenes, prefabs) through a pluggable Store.
package resource

import (
	"path"
	"strings"
)

// Resource is a shared asset identified by its path. Implementations embed
// Base, which is how the registry assigns the path.
type Resource interface {
	Path() string
	// Decode replaces the content of the resource with data.
	Decode(data []byte) error
	// Encode returns the persisted form of the resource.
	Encode() ([]byte, error)

	base() *Base
}

// Base carries the identity shared by every resource.
type Base struct {
	path string
}

func (b *Base) Path() string { return b.path }
func (b *Base) base() *Base  { return b }

// Kind names the resource family of a path by its extension, e.g.
// "prefab" for "units/turret.prefab".
func Kind(p string) string {
	ext := path.Ext(p)
	if ext == "" {
		return "unknown"
	}
	return ext[1:]
}

// Clean normalizes a resource path: forward slashes, no leading slash,
// no dot segments.
func Clean(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}
