package scene

import (
	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/observability/metrics"
	"github.com/zeusync/scenekit/internal/core/resource"
)

// Context carries the collaborators that serialization and scene
// management need. Every GameObject holds the Context it was created with.
type Context struct {
	Log       log.Log
	Resources *resource.Registry
	Factory   *Factory
	Manager   *Manager
	Bus       bus.EventBus
	Metrics   *metrics.Metrics
}

// NewContext builds a Context with a fresh Factory and Manager. Any of the
// arguments may be nil.
func NewContext(l log.Log, resources *resource.Registry, b bus.EventBus, m *metrics.Metrics) *Context {
	if l == nil {
		l = log.NewNop()
	}
	ctx := &Context{
		Log:       l,
		Resources: resources,
		Factory:   NewFactory(),
		Bus:       b,
		Metrics:   m,
	}
	ctx.Manager = NewManager(ctx)
	return ctx
}

func (c *Context) logger() log.Log {
	if c.Log == nil {
		return log.NewNop()
	}
	return c.Log
}

func (c *Context) publish(typ string, data any) {
	if c.Bus == nil {
		return
	}
	if err := c.Bus.Publish(bus.NewEvent(typ, "scene", data)); err != nil {
		c.logger().Warn("Event handler failed", log.String("event", typ), log.Error(err))
	}
}
