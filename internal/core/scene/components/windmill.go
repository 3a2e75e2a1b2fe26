package components

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/scene"
	"github.com/zeusync/scenekit/pkg/linear"
)

// Windmill spins its owner around Axis.
type Windmill struct {
	scene.ComponentBase
	Axis  linear.Vec3
	Speed float32 // degrees per second
}

func NewWindmill() *Windmill {
	return &Windmill{Axis: linear.Vec3{0, 0, 1}, Speed: 45}
}

func (w *Windmill) Serialize(t *props.Table) {
	props.Serialize(t, "axis", &w.Axis, linear.Vec3{0, 0, 1})
	props.Serialize(t, "speed", &w.Speed, 45)
}

func (w *Windmill) Update(dt time.Duration) {
	angle := w.Speed * math32.Pi / 180 * float32(dt.Seconds())
	w.Transform().Rotate(linear.AxisAngle(w.Axis.Norm(), angle))
}
