package resource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/observability/metrics"
)

type note struct {
	Base
	text    string
	decodes int
}

func (n *note) Decode(data []byte) error {
	n.text = string(data)
	n.decodes++
	return nil
}

func (n *note) Encode() ([]byte, error) { return []byte(n.text), nil }

type other struct{ note }

func newRegistry(t *testing.T, store Store) *Registry {
	t.Helper()
	r := NewRegistry(store, log.NewNop(), metrics.New())
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a/b.prefab", Clean("/a/./b.prefab"))
	assert.Equal(t, "a/b.prefab", Clean(`a\b.prefab`))
	assert.Equal(t, "b", Clean("../b"))
	assert.Equal(t, "prefab", Kind("x/y.prefab"))
	assert.Equal(t, "unknown", Kind("x/y"))
}

func TestLoadCachesInstance(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Put("a.txt", []byte("hello")))
	r := newRegistry(t, store)

	n1, err := Load[note](r, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", n1.text)
	assert.Equal(t, "a.txt", n1.Path())

	n2, err := Load[note](r, "/a.txt")
	require.NoError(t, err)
	assert.Same(t, n1, n2)
	assert.Equal(t, 1, n1.decodes)
}

func TestLoadErrors(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Put("a.txt", []byte("x")))
	r := newRegistry(t, store)

	_, err := Load[note](r, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Load[note](r, "a.txt")
	require.NoError(t, err)
	_, err = Load[other](r, "a.txt")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCreateSaveReload(t *testing.T) {
	store := NewMemStore()
	r := newRegistry(t, store)

	n := Create[note](r, "new.txt")
	n.text = "v1"
	require.NoError(t, r.Save(n))

	data, err := store.Get("new.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	same, err := Load[note](r, "new.txt")
	require.NoError(t, err)
	assert.Same(t, n, same)

	changed, err := r.Reload("new.txt")
	require.NoError(t, err)
	assert.False(t, changed, "content written by Save is not reloaded")

	require.NoError(t, store.Put("new.txt", []byte("v2")))
	changed, err = r.Reload("new.txt")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "v2", n.text)

	changed, err = r.Reload("not-loaded.txt")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSaveWithoutPath(t *testing.T) {
	r := newRegistry(t, NewMemStore())
	assert.ErrorIs(t, r.Save(&note{}), ErrNoPath)
}

func TestPreload(t *testing.T) {
	store := NewMemStore()
	for _, p := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, store.Put(p, []byte(p)))
	}
	r := newRegistry(t, store)
	require.NoError(t, r.Preload(context.Background(), "a.txt", "b.txt", "c.txt"))

	// the store is no longer consulted for preloaded paths
	require.NoError(t, store.Put("b.txt", []byte("changed")))
	n, err := Load[note](r, "b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b.txt", n.text)

	err = r.Preload(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestForget(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Put("a.txt", []byte("x")))
	r := newRegistry(t, store)

	n1, err := Load[note](r, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, r.Loaded())
	r.Forget("a.txt")
	assert.Empty(t, r.Loaded())
	n2, err := Load[note](r, "a.txt")
	require.NoError(t, err)
	assert.NotSame(t, n1, n2)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Put("scenes/level.scene", []byte("a = 1\n")))
	require.NoError(t, s.Put("units/turret.prefab", []byte("b = 2\n")))

	data, err := s.Get("scenes/level.scene")
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n", string(data))

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"scenes/level.scene", "units/turret.prefab"}, names)

	_, err = os.Stat(filepath.Join(dir, "units", "turret.prefab"))
	assert.NoError(t, err)
}

func TestFileStoreWatch(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	require.NoError(t, s.Put("a.txt", []byte("1")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	require.NoError(t, s.Watch(ctx, func(name string) { changed <- name }))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("2"), 0o644))

	select {
	case name := <-changed:
		assert.Equal(t, "a.txt", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestBadgerStore(t *testing.T) {
	for _, compress := range []bool{false, true} {
		s, err := OpenBadgerStore(BadgerOptions{Compress: compress})
		require.NoError(t, err)

		payload := []byte("gameobjects {\n    0 {\n        name = Turret\n    }\n}\n")
		require.NoError(t, s.Put("/level.scene", payload))
		got, err := s.Get("level.scene")
		require.NoError(t, err)
		assert.Equal(t, payload, got)

		_, err = s.Get("missing")
		assert.ErrorIs(t, err, ErrNotFound)

		names, err := s.List()
		require.NoError(t, err)
		assert.Equal(t, []string{"level.scene"}, names)

		require.NoError(t, s.Close())
		_, err = s.Get("level.scene")
		assert.ErrorIs(t, err, ErrClosed)
	}
}

func TestCopy(t *testing.T) {
	src := NewFileStore(t.TempDir())
	require.NoError(t, src.Put("a.scene", []byte("a")))
	require.NoError(t, src.Put("b/c.prefab", []byte("c")))

	dst, err := OpenBadgerStore(BadgerOptions{Compress: true})
	require.NoError(t, err)
	defer dst.Close()

	n, err := Copy(dst, src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := dst.Get("b/c.prefab")
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
}

func TestWatchUnsupported(t *testing.T) {
	r := newRegistry(t, NewMemStore())
	assert.Error(t, r.Watch(context.Background(), func(string) {}))
}
