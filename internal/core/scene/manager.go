package scene

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/resource"
	"github.com/zeusync/scenekit/pkg/sequence"
)

// Manager owns the live GameObjects and the open scene. Apart from Post
// and Call, its methods must be called from the goroutine running Update.
type Manager struct {
	ctx     *Context
	objects []*GameObject
	scene   *Scene

	mu   sync.Mutex
	jobs []func()
}

func NewManager(ctx *Context) *Manager {
	return &Manager{ctx: ctx}
}

// GameObjectCreated registers g as live.
func (m *Manager) GameObjectCreated(g *GameObject) {
	if slices.Contains(m.objects, g) {
		return
	}
	m.objects = append(m.objects, g)
	m.ctx.Metrics.SetGameObjects(len(m.objects))
	m.ctx.publish(bus.GameObjectCreated, info(g))
}

// GameObjectDeleted unregisters g.
func (m *Manager) GameObjectDeleted(g *GameObject) {
	i := slices.Index(m.objects, g)
	if i < 0 {
		return
	}
	m.objects = slices.Delete(m.objects, i, i+1)
	m.ctx.Metrics.SetGameObjects(len(m.objects))
	m.ctx.publish(bus.GameObjectDeleted, info(g))
}

func info(g *GameObject) bus.GameObjectInfo {
	gi := bus.GameObjectInfo{ID: g.id.String(), Name: g.name}
	if g.prefab != nil {
		gi.Prefab = g.prefab.Path()
	}
	return gi
}

// GameObjects returns the live objects in creation order.
func (m *Manager) GameObjects() []*GameObject { return slices.Clone(m.objects) }

// Roots returns the live objects without a parent.
func (m *Manager) Roots() []*GameObject {
	return sequence.Collect(sequence.Filter(sequence.From(m.objects), func(g *GameObject) bool {
		return g.transform.Parent() == nil
	}))
}

// FindByName returns the first live object called name.
func (m *Manager) FindByName(name string) *GameObject {
	g, _ := sequence.First(sequence.Filter(sequence.From(m.objects), func(g *GameObject) bool {
		return g.name == name
	}))
	return g
}

// FindAllComponents returns every live component of type T.
func FindAllComponents[T any](m *Manager) []T {
	comps := sequence.FlatMap(sequence.From(m.objects), func(g *GameObject) iter.Seq[Component] {
		return sequence.From(g.components)
	})
	return sequence.Collect(sequence.OfType[T](comps))
}

// Scene returns the open scene, or nil.
func (m *Manager) Scene() *Scene { return m.scene }

// Post queues fn to run at the start of the next Update. It is safe to
// call from any goroutine.
func (m *Manager) Post(fn func()) {
	m.mu.Lock()
	m.jobs = append(m.jobs, fn)
	m.mu.Unlock()
}

// Call posts fn and waits until it has run or ctx is done.
func (m *Manager) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	m.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) runJobs() {
	m.mu.Lock()
	jobs := m.jobs
	m.jobs = nil
	m.mu.Unlock()
	for _, job := range jobs {
		job()
	}
}

// Update runs queued jobs, then starts new components and updates the
// update-enabled ones.
func (m *Manager) Update(dt time.Duration) {
	m.runJobs()
	for _, g := range m.GameObjects() {
		for _, c := range g.Components() {
			b := c.base()
			if b.destroyed || g.destroyed {
				continue
			}
			if !b.started {
				b.started = true
				if s, ok := c.(Starter); ok {
					s.Start()
				}
			}
			if u, ok := c.(Updater); ok && c.UpdateEnabled() {
				u.Update(dt)
			}
		}
	}
}

// Input routes in to every InputHandler component.
func (m *Manager) Input(in Input) {
	for _, h := range FindAllComponents[InputHandler](m) {
		if !h.(Component).base().destroyed {
			h.HandleInput(in)
		}
	}
}

// OpenScene makes s the open scene. Its objects are created before the
// objects of the previous scene are destroyed; roots flagged
// SurviveSceneChanges are kept.
func (m *Manager) OpenScene(s *Scene) error {
	if s == nil {
		return ErrNoScene
	}
	started := time.Now()
	old := m.Roots()

	roots := s.CreateGameObjects(m.ctx)
	for _, g := range old {
		if !g.flags.Has(SurviveSceneChanges) {
			g.Destroy()
		}
	}
	m.scene = s

	l := m.ctx.logger()
	if err := s.Err(); err != nil {
		l.Warn("Scene loaded with invalid values", log.String("path", s.Path()), log.Error(err))
	}
	m.ctx.Metrics.SceneOp("open", started, nil)
	l.Info("Scene opened",
		log.String("path", s.Path()),
		log.Int("roots", len(roots)),
		log.Int("objects", len(m.objects)),
		log.Duration("took", time.Since(started)))
	m.ctx.publish(bus.SceneOpened, bus.SceneInfo{Path: s.Path(), Objects: len(m.objects)})
	return nil
}

// LoadScene loads the scene at path and opens it. A scene that fails to
// load leaves the live objects untouched.
func (m *Manager) LoadScene(path string) error {
	if m.ctx.Resources == nil {
		return fmt.Errorf("scene: load %s: no resource registry", path)
	}
	started := time.Now()
	s, err := resource.Load[Scene](m.ctx.Resources, path)
	if err != nil {
		m.ctx.Metrics.SceneOp("open", started, err)
		return err
	}
	return m.OpenScene(s)
}

// SaveScene captures the live objects into the open scene and saves it.
func (m *Manager) SaveScene() error {
	if m.scene == nil {
		return ErrNoScene
	}
	started := time.Now()
	m.scene.SaveGameObjects(m)
	var err error
	if m.ctx.Resources != nil {
		err = m.ctx.Resources.Save(m.scene)
	}
	m.ctx.Metrics.SceneOp("save", started, err)
	if err != nil {
		return err
	}
	m.ctx.logger().Info("Scene saved",
		log.String("path", m.scene.Path()),
		log.Int("entries", m.scene.Table().Len()),
		log.Duration("took", time.Since(started)))
	m.ctx.publish(bus.SceneSaved, bus.SceneInfo{Path: m.scene.Path(), Objects: len(m.objects)})
	return nil
}

// Snapshot returns the text form of the visible live roots.
func (m *Manager) Snapshot() string {
	roots := sequence.Collect(sequence.Filter(sequence.From(m.Roots()), func(g *GameObject) bool {
		return !g.flags.Has(NotShownOrSaved)
	}))
	t := props.New(props.Writing)
	props.SerializeList(t, keyGameObjects, &roots, nil)
	return t.String()
}

// Clear destroys every live object and closes the scene.
func (m *Manager) Clear() {
	for _, g := range m.Roots() {
		g.Destroy()
	}
	m.scene = nil
}
