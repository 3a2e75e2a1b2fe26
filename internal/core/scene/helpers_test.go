package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/observability/metrics"
	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/resource"
)

type health struct {
	ComponentBase
	hp int

	starts, updates int
	inputs          []Input
	onDestroy       func()
}

func (h *health) Serialize(t *props.Table) { props.Serialize(t, "health", &h.hp, 50) }
func (h *health) Start()                   { h.starts++ }
func (h *health) Update(time.Duration)     { h.updates++ }
func (h *health) HandleInput(in Input)     { h.inputs = append(h.inputs, in) }
func (h *health) OnDestroy() {
	if h.onDestroy != nil {
		h.onDestroy()
	}
}

type shield struct {
	ComponentBase
	radius float32
}

func (s *shield) Serialize(t *props.Table) { props.Serialize(t, "radius", &s.radius, 70) }

type fixture struct {
	ctx   *Context
	store *resource.MemStore
	bus   bus.EventBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := resource.NewMemStore()
	reg := resource.NewRegistry(store, log.NewNop(), nil)
	b := bus.New()
	ctx := NewContext(log.NewNop(), reg, b, metrics.New())
	ctx.Factory.Register("Health", func() Component { return &health{hp: 50} })
	ctx.Factory.Register("Shield", func() Component { return &shield{radius: 70} })
	return &fixture{ctx: ctx, store: store, bus: b}
}

func (f *fixture) object(t *testing.T, name string, comps ...string) *GameObject {
	t.Helper()
	g := NewGameObject(f.ctx, name)
	for _, c := range comps {
		_, err := g.AddComponent(c)
		require.NoError(t, err)
	}
	return g
}

func (f *fixture) prefab(t *testing.T, path, text string) *Prefab {
	t.Helper()
	require.NoError(t, f.store.Put(path, []byte(text)))
	p, err := resource.Load[Prefab](f.ctx.Resources, path)
	require.NoError(t, err)
	return p
}

func hpOf(t *testing.T, g *GameObject) int {
	t.Helper()
	h, ok := GetComponent[*health](g)
	require.True(t, ok, "no health on %s", g.Name())
	return h.hp
}

func reparse(t *testing.T, tbl *props.Table) *props.Table {
	t.Helper()
	out, err := props.ParseString(tbl.String())
	require.NoError(t, err)
	return out
}
