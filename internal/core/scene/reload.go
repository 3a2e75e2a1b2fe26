package scene

import (
	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/resource"
)

// Reload re-reads the resource at path when its stored content changed.
//
// Instances of a reloaded prefab keep their overrides: each one is
// captured against the old baseline first and read back over the new one.
// A reloaded open scene is reopened.
func (m *Manager) Reload(path string) (bool, error) {
	if m.ctx.Resources == nil {
		return false, nil
	}
	path = resource.Clean(path)

	type override struct {
		g *GameObject
		t *props.Table
	}
	var overrides []override
	for _, g := range m.objects {
		if g.prefab != nil && g.prefab.Path() == path {
			overrides = append(overrides, override{g, written(g)})
		}
	}

	changed, err := m.ctx.Resources.Reload(path)
	if err != nil || !changed {
		return false, err
	}

	for _, o := range overrides {
		if o.g.destroyed {
			continue
		}
		o.t.SetMode(props.Reading)
		o.g.Serialize(o.t)
	}
	if m.scene != nil && m.scene.Path() == path {
		if err := m.OpenScene(m.scene); err != nil {
			return true, err
		}
	}
	m.ctx.publish(bus.ResourceReloaded, path)
	return true, nil
}

func written(g *GameObject) *props.Table {
	t := props.New(props.Writing)
	g.Serialize(t)
	return t
}
