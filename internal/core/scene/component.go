package scene

import (
	"time"

	"github.com/zeusync/scenekit/internal/core/props"
)

// Component is a unit of state and behaviour attached to a GameObject.
// Implementations embed ComponentBase and are created through the Factory,
// which fills in the owner and the type name.
type Component interface {
	props.Serializer

	GameObject() *GameObject
	TypeName() string
	UpdateEnabled() bool
	SetUpdateEnabled(enabled bool)

	base() *ComponentBase
}

// ComponentBase holds the bookkeeping shared by all components.
type ComponentBase struct {
	owner     *GameObject
	typeName  string
	noUpdate  bool
	started   bool
	destroyed bool
}

func (c *ComponentBase) GameObject() *GameObject { return c.owner }
func (c *ComponentBase) TypeName() string        { return c.typeName }
func (c *ComponentBase) UpdateEnabled() bool     { return !c.noUpdate }
func (c *ComponentBase) SetUpdateEnabled(on bool) {
	c.noUpdate = !on
}

// Destroyed reports whether the component was removed from its owner.
func (c *ComponentBase) Destroyed() bool { return c.destroyed }

// Transform returns the transform of the owner.
func (c *ComponentBase) Transform() *Transform {
	if c.owner == nil {
		return nil
	}
	return c.owner.transform
}

func (c *ComponentBase) base() *ComponentBase { return c }

// Optional hooks. The manager calls them on the main loop.
type (
	// Starter runs once before the first update after the component was attached.
	Starter interface {
		Start()
	}
	// Updater runs every frame while the component is update-enabled.
	Updater interface {
		Update(dt time.Duration)
	}
	// InputHandler receives the input routed by the manager.
	InputHandler interface {
		HandleInput(in Input)
	}
	// Destroyer runs when the component is removed or its owner destroyed.
	Destroyer interface {
		OnDestroy()
	}
)

// Input is a single input action routed to components.
type Input struct {
	Action string
	Value  float32
}

func destroyComponent(c Component) {
	b := c.base()
	if b.destroyed {
		return
	}
	if d, ok := c.(Destroyer); ok {
		d.OnDestroy()
	}
	b.destroyed = true
}
