package scene

import (
	"maps"
	"slices"
	"sync"
)

// TransformName is the type name of the Transform component.
const TransformName = "Transform"

// Constructor returns a new, unattached component.
type Constructor func() Component

// Factory maps component type names to constructors. Type names are what
// scene files store, so a name must stay stable once data uses it.
type Factory struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewFactory returns a factory that knows the Transform.
func NewFactory() *Factory {
	f := &Factory{ctors: make(map[string]Constructor)}
	f.Register(TransformName, func() Component { return newTransform() })
	return f
}

// Register binds name to ctor, replacing any previous binding.
func (f *Factory) Register(name string, ctor Constructor) {
	f.mu.Lock()
	f.ctors[name] = ctor
	f.mu.Unlock()
}

func (f *Factory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ctors[name]
	return ok
}

// Names returns the registered type names, sorted.
func (f *Factory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.ctors))
}

// Create attaches a new component of type name to owner. Unknown names
// yield nil.
func (f *Factory) Create(owner *GameObject, name string) Component {
	f.mu.RLock()
	ctor, ok := f.ctors[name]
	f.mu.RUnlock()
	if !ok {
		return nil
	}
	c := ctor()
	b := c.base()
	b.owner = owner
	b.typeName = name
	owner.components = append(owner.components, c)
	return c
}
