package scene

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/resource"
)

// Flags control how a GameObject takes part in saving and scene changes.
type Flags uint32

const (
	// NotShownOrSaved hides the object from snapshots and every save.
	NotShownOrSaved Flags = 1 << iota
	// NotSavedInScene keeps the object out of scene files only.
	NotSavedInScene
	// SurviveSceneChanges keeps the object alive when another scene opens.
	SurviveSceneChanges
)

func (f Flags) Has(x Flags) bool { return f&x == x }

const (
	keyPrefab   = "prefab"
	keyName     = "name"
	keyChildren = "children"
)

// GameObject is an entity made of components. It always owns exactly one
// Transform, which places it in the parent/child tree.
type GameObject struct {
	ctx *Context
	id  uuid.UUID

	name   string
	flags  Flags
	prefab *Prefab

	components []Component
	transform  *Transform

	registered bool
	destroyed  bool
}

var _ props.Serializer = (*GameObject)(nil)

func newGameObject(ctx *Context, name string) *GameObject {
	g := &GameObject{ctx: ctx, id: uuid.New(), name: name}
	g.transform = ctx.Factory.Create(g, TransformName).(*Transform)
	return g
}

// NewGameObject creates an empty object and registers it with the manager.
func NewGameObject(ctx *Context, name string) *GameObject {
	g := newGameObject(ctx, name)
	g.register()
	return g
}

// Instantiate creates an object from prefab p. The prefab baseline is
// applied before the object is registered with the manager.
func Instantiate(ctx *Context, p *Prefab) *GameObject {
	g := newGameObject(ctx, "")
	g.prefab = p
	g.Serialize(props.New(props.Reading))
	g.register()
	return g
}

func (g *GameObject) register() {
	if g.registered || g.destroyed {
		return
	}
	g.registered = true
	if m := g.ctx.Manager; m != nil {
		m.GameObjectCreated(g)
	}
}

// ID is a runtime identity. It is not persisted.
func (g *GameObject) ID() uuid.UUID         { return g.id }
func (g *GameObject) Name() string          { return g.name }
func (g *GameObject) SetName(name string)   { g.name = name }
func (g *GameObject) Flags() Flags          { return g.flags }
func (g *GameObject) SetFlags(f Flags)      { g.flags = f }
func (g *GameObject) AddFlags(f Flags)      { g.flags |= f }
func (g *GameObject) ClearFlags(f Flags)    { g.flags &^= f }
func (g *GameObject) Transform() *Transform { return g.transform }
func (g *GameObject) Prefab() *Prefab       { return g.prefab }
func (g *GameObject) Destroyed() bool       { return g.destroyed }
func (g *GameObject) Context() *Context     { return g.ctx }

// SetPrefab links g to p. The link only affects future serialize calls.
func (g *GameObject) SetPrefab(p *Prefab) { g.prefab = p }

// Parent returns the object owning the parent transform, or nil for roots.
func (g *GameObject) Parent() *GameObject {
	if p := g.transform.Parent(); p != nil {
		return p.GameObject()
	}
	return nil
}

// Children returns the objects of the direct child transforms.
func (g *GameObject) Children() []*GameObject {
	kids := g.transform.Children()
	out := make([]*GameObject, len(kids))
	for i, k := range kids {
		out[i] = k.GameObject()
	}
	return out
}

// SetParent moves g under parent, or makes it a root when parent is nil.
func (g *GameObject) SetParent(parent *GameObject) error {
	if parent == nil {
		return g.transform.SetParent(nil)
	}
	return g.transform.SetParent(parent.transform)
}

// Components returns the attached components in attach order.
func (g *GameObject) Components() []Component { return slices.Clone(g.components) }

// FindComponent returns the component with the given type name, or nil.
func (g *GameObject) FindComponent(typeName string) Component {
	for _, c := range g.components {
		if c.TypeName() == typeName {
			return c
		}
	}
	return nil
}

// GetComponent returns the first component of type T.
func GetComponent[T any](g *GameObject) (T, bool) {
	for _, c := range g.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// AddComponent attaches a new component of the registered type typeName.
func (g *GameObject) AddComponent(typeName string) (Component, error) {
	if g.FindComponent(typeName) != nil {
		return nil, fmt.Errorf("%w: %s on %q", ErrDuplicateComponent, typeName, g.name)
	}
	c := g.ctx.Factory.Create(g, typeName)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, typeName)
	}
	return c, nil
}

// RemoveComponent detaches and destroys c. The Transform cannot be removed.
func (g *GameObject) RemoveComponent(c Component) error {
	if c == Component(g.transform) {
		return ErrTransformRequired
	}
	i := slices.Index(g.components, c)
	if i < 0 {
		return ErrNotAttached
	}
	g.components = slices.Delete(g.components, i, i+1)
	destroyComponent(c)
	return nil
}

// Destroy tears g down with all of its children and unregisters it. The
// Transform is destroyed after the other components.
func (g *GameObject) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	for _, child := range g.Children() {
		child.Destroy()
	}
	_ = g.transform.SetParent(nil)

	for i := len(g.components) - 1; i >= 0; i-- {
		if c := g.components[i]; c != Component(g.transform) {
			destroyComponent(c)
		}
	}
	destroyComponent(g.transform)
	g.components = nil

	if g.registered {
		if m := g.ctx.Manager; m != nil {
			m.GameObjectDeleted(g)
		}
	}
}

// ApplyToPrefab captures the current state of g as the baseline of its
// prefab and saves the prefab.
func (g *GameObject) ApplyToPrefab() error {
	if g.prefab == nil {
		return ErrNoPrefab
	}
	g.prefab.CloneGameObject(g)
	if g.ctx.Resources == nil {
		return nil
	}
	return g.ctx.Resources.Save(g.prefab)
}

// RevertToPrefab drops every override of g.
func (g *GameObject) RevertToPrefab() error {
	if g.prefab == nil {
		return ErrNoPrefab
	}
	g.Serialize(props.New(props.Reading))
	return nil
}

// Serialize writes g to t or rebuilds g from t, depending on the table mode.
func (g *GameObject) Serialize(t *props.Table) {
	if t.Writing() {
		g.write(t)
		return
	}
	g.read(t)
}

func (g *GameObject) write(t *props.Table) {
	var baseline *props.Table
	if g.prefab != nil {
		baseline = g.prefab.Table()
		path := g.prefab.Path()
		props.Serialize(t, keyPrefab, &path, "")
	}

	props.Serialize(t, keyName, &g.name, "")

	for _, c := range g.components {
		t.Object(c.TypeName(), c)
	}

	kids := g.savedChildren()
	props.SerializeList(t, keyChildren, &kids, nil)

	// Last, so that every inherited value is stripped whichever step wrote it.
	if baseline != nil {
		t.DeltaCompress(baseline)
	}
}

func (g *GameObject) read(t *props.Table) {
	if g.prefab == nil {
		var path string
		props.Serialize(t, keyPrefab, &path, "")
		if path != "" {
			g.prefab = g.resolvePrefab(path)
		}
	}
	if g.prefab != nil {
		t.AddPropertyData(g.prefab.Table(), false)
	}

	props.Serialize(t, keyName, &g.name, "")

	names := t.TableNames()
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}
	for _, c := range slices.Clone(g.components) {
		if c != Component(g.transform) && !present[c.TypeName()] {
			_ = g.RemoveComponent(c)
		}
	}

	if !present[TransformName] {
		t.Object(TransformName, g.transform)
	}
	for _, name := range names {
		if name == keyChildren {
			continue
		}
		c := g.FindComponent(name)
		if c == nil {
			if c = g.ctx.Factory.Create(g, name); c == nil {
				g.ctx.logger().Warn("Unknown component type dropped",
					log.String("type", name), log.String("gameobject", g.name))
				g.ctx.Metrics.DroppedComponent(name)
				continue
			}
		}
		t.Object(name, c)
	}

	kids := g.savedChildren()
	props.SerializeList(t, keyChildren, &kids, func() *GameObject { return newGameObject(g.ctx, "") })
	for _, k := range kids {
		g.adoptChild(k)
	}
}

// adoptChild reparents a child read from a table and registers it. A child
// that cannot be reparented is destroyed.
func (g *GameObject) adoptChild(k *GameObject) bool {
	if err := k.transform.SetParent(g.transform); err != nil {
		g.ctx.logger().Warn("Child not reparented",
			log.String("gameobject", g.name), log.String("child", k.name), log.Error(err))
		k.Destroy()
		return false
	}
	k.register()
	return true
}

// savedChildren lists the children that take part in serialization.
func (g *GameObject) savedChildren() []*GameObject {
	var kids []*GameObject
	for _, k := range g.Children() {
		if !k.flags.Has(NotShownOrSaved) {
			kids = append(kids, k)
		}
	}
	return kids
}

func (g *GameObject) resolvePrefab(path string) *Prefab {
	if g.ctx.Resources == nil {
		return nil
	}
	p, err := resource.Load[Prefab](g.ctx.Resources, path)
	if err != nil {
		g.ctx.logger().Warn("Prefab not resolved",
			log.String("path", path), log.String("gameobject", g.name), log.Error(err))
		return nil
	}
	return p
}

func (g *GameObject) String() string {
	return fmt.Sprintf("GameObject(%s %q)", g.id, g.name)
}
