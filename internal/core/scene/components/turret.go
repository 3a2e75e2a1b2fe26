package components

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/scene"
	"github.com/zeusync/scenekit/pkg/linear"
)

// Turret yaws towards the object named Target while it is in range.
type Turret struct {
	scene.ComponentBase
	Target    string
	Range     float32
	TurnSpeed float32 // radians per second

	yaw float32
}

func NewTurret() *Turret {
	return &Turret{Range: 50, TurnSpeed: math32.Pi}
}

func (tr *Turret) Serialize(t *props.Table) {
	props.Serialize(t, "target", &tr.Target, "")
	props.Serialize(t, "range", &tr.Range, 50)
	props.Serialize(t, "turn_speed", &tr.TurnSpeed, math32.Pi)
}

// Yaw is the current heading around the up axis.
func (tr *Turret) Yaw() float32 { return tr.yaw }

func (tr *Turret) Update(dt time.Duration) {
	if tr.Target == "" {
		return
	}
	target := tr.GameObject().Context().Manager.FindByName(tr.Target)
	if target == nil {
		return
	}
	d := target.Transform().WorldPosition().Sub(tr.Transform().WorldPosition())
	if d.Len() > tr.Range {
		return
	}
	want := math32.Atan2(d[0], d[2])
	diff := wrapAngle(want - tr.yaw)
	step := tr.TurnSpeed * float32(dt.Seconds())
	if math32.Abs(diff) <= step {
		tr.yaw = want
	} else {
		if diff < 0 {
			step = -step
		}
		tr.yaw = wrapAngle(tr.yaw + step)
	}
	tr.Transform().SetRotation(linear.AxisAngle(linear.Up, tr.yaw))
}

func wrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}
