package components

import (
	"time"

	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/scene"
	"github.com/zeusync/scenekit/pkg/linear"
)

// Input actions understood by Helicopter.
const (
	ActionThrottle = "throttle"
	ActionYaw      = "yaw"
)

// Helicopter flies its owner from throttle and yaw input.
type Helicopter struct {
	scene.ComponentBase
	MaxSpeed float32
	YawRate  float32 // radians per second at full input

	throttle float32
	yaw      float32
}

func NewHelicopter() *Helicopter {
	return &Helicopter{MaxSpeed: 20, YawRate: 1}
}

func (h *Helicopter) Serialize(t *props.Table) {
	props.Serialize(t, "max_speed", &h.MaxSpeed, 20)
	props.Serialize(t, "yaw_rate", &h.YawRate, 1)
}

func (h *Helicopter) HandleInput(in scene.Input) {
	v := min(max(in.Value, -1), 1)
	switch in.Action {
	case ActionThrottle:
		h.throttle = v
	case ActionYaw:
		h.yaw = v
	}
}

func (h *Helicopter) Update(dt time.Duration) {
	s := float32(dt.Seconds())
	tr := h.Transform()
	if h.yaw != 0 {
		tr.Rotate(linear.AxisAngle(linear.Up, h.yaw*h.YawRate*s))
	}
	if h.throttle != 0 {
		forward := tr.Rotation().Rotate(linear.Vec3{0, 0, 1})
		tr.Translate(forward.Scale(h.throttle * h.MaxSpeed * s))
	}
}
