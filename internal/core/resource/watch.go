package resource

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

var _ Watcher = (*FileStore)(nil)

// Watch reports files written, created or renamed below the root.
// fsnotify is not recursive, so every directory is added and new ones are
// picked up as they appear.
func (s *FileStore) Watch(ctx context.Context, notify func(name string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	err = filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if ev.Has(fsnotify.Create) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = w.Add(ev.Name)
						continue
					}
				}
				rel, err := filepath.Rel(s.root, ev.Name)
				if err != nil || strings.HasPrefix(filepath.Base(rel), ".") {
					continue
				}
				notify(filepath.ToSlash(rel))
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
