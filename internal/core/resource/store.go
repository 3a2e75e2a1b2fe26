package resource

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Store is the byte-level backend of a Registry. Names are cleaned
// resource paths.
type Store interface {
	Get(name string) ([]byte, error)
	Put(name string, data []byte) error
	List() ([]string, error)
	Close() error
}

// Watcher is implemented by stores that can report external changes.
// Watch returns once watching is set up; notify is called from another
// goroutine until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, notify func(name string)) error
}

// Copy writes every resource of src into dst and returns how many were copied.
func Copy(dst, src Store) (int, error) {
	names, err := src.List()
	if err != nil {
		return 0, err
	}
	for i, name := range names {
		data, err := src.Get(name)
		if err != nil {
			return i, err
		}
		if err := dst.Put(name, data); err != nil {
			return i, err
		}
	}
	return len(names), nil
}

// FileStore keeps resources as files below a root directory.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Root() string { return s.root }

func (s *FileStore) file(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(Clean(name)))
}

func (s *FileStore) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(s.file(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Put writes through a temporary file so readers never see a torn file.
func (s *FileStore) Put(name string, data []byte) error {
	file := s.file(name)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(file), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), file)
}

func (s *FileStore) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name()[0] == '.' {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	slices.Sort(names)
	return names, err
}

func (s *FileStore) Close() error { return nil }

// MemStore is an in-memory Store.
type MemStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]byte)}
}

func (s *MemStore) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[Clean(name)]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (s *MemStore) Put(name string, data []byte) error {
	s.mu.Lock()
	s.files[Clean(name)] = slices.Clone(data)
	s.mu.Unlock()
	return nil
}

func (s *MemStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *MemStore) Close() error { return nil }
