package components

import (
	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/scene"
	"github.com/zeusync/scenekit/pkg/linear"
)

type LightKind uint8

const (
	Directional LightKind = iota
	Point
	Spot
)

var lightKinds = []string{"directional", "point", "spot"}

func (k LightKind) String() string { return lightKinds[k] }

// Light describes a light source for the renderer.
type Light struct {
	scene.ComponentBase
	Kind      LightKind
	Color     linear.Color
	Intensity float32
	Range     float32
	Shadows   bool
}

func NewLight() *Light {
	return &Light{Kind: Point, Color: linear.White, Intensity: 1, Range: 10}
}

func (l *Light) Serialize(t *props.Table) {
	props.SerializeEnum(t, "kind", &l.Kind, Point, lightKinds)
	props.Serialize(t, "color", &l.Color, linear.White)
	props.Serialize(t, "intensity", &l.Intensity, 1)
	props.Serialize(t, "range", &l.Range, 10)
	props.Serialize(t, "shadows", &l.Shadows, false)
}

// MeshRenderer references the mesh and material drawn for its owner.
type MeshRenderer struct {
	scene.ComponentBase
	Mesh        string
	Material    string
	Tint        linear.Color
	CastShadows bool
}

func NewMeshRenderer() *MeshRenderer {
	return &MeshRenderer{Tint: linear.White, CastShadows: true}
}

func (m *MeshRenderer) Serialize(t *props.Table) {
	props.Serialize(t, "mesh", &m.Mesh, "")
	props.Serialize(t, "material", &m.Material, "")
	props.Serialize(t, "tint", &m.Tint, linear.White)
	props.Serialize(t, "cast_shadows", &m.CastShadows, true)
}
