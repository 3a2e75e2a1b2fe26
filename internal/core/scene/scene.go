package scene

import (
	"bytes"

	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/resource"
	"github.com/zeusync/scenekit/pkg/linear"
)

const keyGameObjects = "gameobjects"

// Environment holds the flat rendering settings stored with a scene.
type Environment struct {
	Ambient      linear.Color
	SunDirection linear.Vec3
	SunIntensity float32
	Fog          bool
	FogColor     linear.Color
	FogDensity   float32
}

func DefaultEnvironment() Environment {
	return Environment{
		Ambient:      linear.Color{0.2, 0.2, 0.2, 1},
		SunDirection: linear.Vec3{0, -1, 0},
		SunIntensity: 1,
		FogColor:     linear.Color{0.5, 0.5, 0.5, 1},
		FogDensity:   0.01,
	}
}

func (e *Environment) Serialize(t *props.Table) {
	def := DefaultEnvironment()
	props.Serialize(t, "ambient", &e.Ambient, def.Ambient)
	props.Serialize(t, "sun_direction", &e.SunDirection, def.SunDirection)
	props.Serialize(t, "sun_intensity", &e.SunIntensity, def.SunIntensity)
	props.Serialize(t, "fog", &e.Fog, def.Fog)
	props.Serialize(t, "fog_color", &e.FogColor, def.FogColor)
	props.Serialize(t, "fog_density", &e.FogDensity, def.FogDensity)
}

// Scene is a resource holding the root GameObjects of a level and its
// environment settings.
type Scene struct {
	resource.Base
	Environment Environment

	table *props.Table
	err   error
}

var _ resource.Resource = (*Scene)(nil)

// NewScene returns an unsaved scene with default settings. Scenes meant to
// be saved are created through resource.Create instead.
func NewScene() *Scene {
	return &Scene{Environment: DefaultEnvironment(), table: props.New(props.Reading)}
}

// Table returns the stored table. A scene without one starts from the
// default environment.
func (s *Scene) Table() *props.Table {
	if s.table == nil {
		s.table = props.New(props.Reading)
		s.Environment = DefaultEnvironment()
	}
	return s.table
}

func (s *Scene) Decode(data []byte) error {
	t, err := props.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.table = t
	s.Environment.Serialize(t)
	return nil
}

func (s *Scene) Encode() ([]byte, error) {
	return s.Table().MarshalText()
}

// SaveGameObjects captures the live roots of m into the stored table.
// Objects flagged NotSavedInScene or NotShownOrSaved are skipped, as are
// objects with a parent, which are saved as children of it.
func (s *Scene) SaveGameObjects(m *Manager) {
	var roots []*GameObject
	for _, g := range m.GameObjects() {
		if g.flags.Has(NotSavedInScene) || g.flags.Has(NotShownOrSaved) || g.Parent() != nil {
			continue
		}
		roots = append(roots, g)
	}
	t := s.Table()
	t.Clear()
	t.SetMode(props.Writing)
	s.Environment.Serialize(t)
	props.SerializeList(t, keyGameObjects, &roots, nil)
}

// CreateGameObjects builds live objects from the stored table and
// registers them with the manager of ctx. The returned roots are for
// inspection only.
//
// Reading merges prefab baselines into the tables it walks, so it runs on a
// copy and the stored table keeps only the persisted overrides. Values that
// failed to decode are reported by Err.
func (s *Scene) CreateGameObjects(ctx *Context) []*GameObject {
	t := s.Table().Clone()
	t.SetMode(props.Reading)
	s.Environment.Serialize(t)
	var roots []*GameObject
	props.SerializeList(t, keyGameObjects, &roots, func() *GameObject { return newGameObject(ctx, "") })
	for _, g := range roots {
		g.register()
	}
	s.err = t.Err()
	return roots
}

// Err returns the decode errors of the last CreateGameObjects call.
func (s *Scene) Err() error { return s.err }
