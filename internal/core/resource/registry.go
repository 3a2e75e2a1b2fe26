package resource

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/observability/metrics"
	"github.com/zeusync/scenekit/pkg/concurrent"
)

type entry struct {
	res  Resource
	hash uint64
}

// Registry owns every loaded resource, keyed by path. A path resolves to
// the same instance until it is forgotten.
type Registry struct {
	mu      sync.Mutex
	store   Store
	log     log.Log
	metrics *metrics.Metrics

	entries map[string]*entry
	pending map[string][]byte
}

func NewRegistry(store Store, l log.Log, m *metrics.Metrics) *Registry {
	if l == nil {
		l = log.NewNop()
	}
	return &Registry{
		store:   store,
		log:     l.With(log.String("component", "resources")),
		metrics: m,
		entries: make(map[string]*entry),
		pending: make(map[string][]byte),
	}
}

func (r *Registry) Store() Store { return r.store }

func (r *Registry) lookup(path string) (Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[path]
	if !ok {
		return nil, false
	}
	return e.res, true
}

// read returns preloaded bytes when available, hitting the store otherwise.
func (r *Registry) read(path string) ([]byte, error) {
	r.mu.Lock()
	data, ok := r.pending[path]
	delete(r.pending, path)
	r.mu.Unlock()
	if ok {
		return data, nil
	}
	return r.store.Get(path)
}

// Load returns the resource stored under path, decoding it on first use.
// Loading a path already held as a different type fails with
// ErrTypeMismatch.
func Load[T any, PT interface {
	*T
	Resource
}](r *Registry, path string) (PT, error) {
	var zero PT
	path = Clean(path)
	kind := Kind(path)
	if res, ok := r.lookup(path); ok {
		typed, ok := res.(PT)
		if !ok {
			r.metrics.ResourceLoad(kind, "error")
			return zero, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, path, res)
		}
		r.metrics.ResourceLoad(kind, "hit")
		return typed, nil
	}

	data, err := r.read(path)
	if err != nil {
		r.metrics.ResourceLoad(kind, "error")
		return zero, fmt.Errorf("resource: load %s: %w", path, err)
	}
	res := PT(new(T))
	res.base().path = path
	if err := res.Decode(data); err != nil {
		r.metrics.ResourceLoad(kind, "error")
		return zero, fmt.Errorf("resource: decode %s: %w", path, err)
	}

	r.mu.Lock()
	if e, ok := r.entries[path]; ok {
		// Decoding may have loaded the same path recursively.
		r.mu.Unlock()
		if typed, ok := e.res.(PT); ok {
			return typed, nil
		}
		return zero, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, path, e.res)
	}
	r.entries[path] = &entry{res: res, hash: xxhash.Sum64(data)}
	r.mu.Unlock()

	r.metrics.ResourceLoad(kind, "loaded")
	r.log.Debug("Resource loaded", log.String("path", path), log.Int("bytes", len(data)))
	return res, nil
}

// Create registers a fresh, unsaved resource under path, replacing any
// resource held there.
func Create[T any, PT interface {
	*T
	Resource
}](r *Registry, path string) PT {
	path = Clean(path)
	res := PT(new(T))
	res.base().path = path
	r.mu.Lock()
	r.entries[path] = &entry{res: res}
	r.mu.Unlock()
	return res
}

// Save encodes res and writes it to the store under its path.
func (r *Registry) Save(res Resource) error {
	if res.Path() == "" {
		return ErrNoPath
	}
	data, err := res.Encode()
	if err != nil {
		return fmt.Errorf("resource: encode %s: %w", res.Path(), err)
	}
	if err := r.store.Put(res.Path(), data); err != nil {
		return fmt.Errorf("resource: save %s: %w", res.Path(), err)
	}
	r.mu.Lock()
	if e, ok := r.entries[res.Path()]; ok && e.res == res {
		e.hash = xxhash.Sum64(data)
	} else {
		r.entries[res.Path()] = &entry{res: res, hash: xxhash.Sum64(data)}
	}
	r.mu.Unlock()
	return nil
}

// Reload decodes the stored bytes of a loaded resource into the same
// instance. It reports false when path is not loaded or when the stored
// content is unchanged since it was last read or written.
func (r *Registry) Reload(path string) (bool, error) {
	path = Clean(path)
	r.mu.Lock()
	e, ok := r.entries[path]
	r.mu.Unlock()
	if !ok {
		return false, nil
	}
	data, err := r.store.Get(path)
	if err != nil {
		return false, fmt.Errorf("resource: reload %s: %w", path, err)
	}
	sum := xxhash.Sum64(data)
	if sum == e.hash {
		return false, nil
	}
	if err := e.res.Decode(data); err != nil {
		r.metrics.ResourceLoad(Kind(path), "error")
		return false, fmt.Errorf("resource: reload %s: %w", path, err)
	}
	r.mu.Lock()
	e.hash = sum
	r.mu.Unlock()
	r.metrics.ResourceLoad(Kind(path), "reloaded")
	r.log.Info("Resource reloaded", log.String("path", path))
	return true, nil
}

// Preload reads the given paths concurrently so that following Loads only
// decode. Paths already loaded are skipped; missing ones fail the call.
func (r *Registry) Preload(ctx context.Context, paths ...string) error {
	var todo []string
	for _, p := range paths {
		p = Clean(p)
		if _, ok := r.lookup(p); !ok {
			todo = append(todo, p)
		}
	}
	return concurrent.ForEach(ctx, todo, 8, func(_ context.Context, p string) error {
		data, err := r.store.Get(p)
		if err != nil {
			return fmt.Errorf("resource: preload %s: %w", p, err)
		}
		r.mu.Lock()
		r.pending[p] = data
		r.mu.Unlock()
		return nil
	})
}

// Forget drops path from the registry. Holders of the instance keep it.
func (r *Registry) Forget(path string) {
	path = Clean(path)
	r.mu.Lock()
	delete(r.entries, path)
	delete(r.pending, path)
	r.mu.Unlock()
}

// Loaded returns the paths currently held.
func (r *Registry) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make([]string, 0, len(r.entries))
	for p := range r.entries {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Watch forwards change notifications of the store for loaded paths. The
// callback runs on the watcher goroutine; callers are expected to hand the
// actual Reload to the thread owning the resources.
func (r *Registry) Watch(ctx context.Context, notify func(path string)) error {
	w, ok := r.store.(Watcher)
	if !ok {
		return errors.New("resource: store does not support watching")
	}
	return w.Watch(ctx, func(name string) {
		name = Clean(name)
		if _, ok := r.lookup(name); ok {
			notify(name)
		}
	})
}

func (r *Registry) Close() error {
	return r.store.Close()
}
