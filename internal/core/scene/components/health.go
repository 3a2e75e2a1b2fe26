package components

import (
	"time"

	"github.com/zeusync/scenekit/internal/core/props"
	"github.com/zeusync/scenekit/internal/core/scene"
)

const (
	DefaultHealth       = 50
	DefaultShieldRadius = 70
)

// Health tracks hit points. An object whose health drops to zero is
// destroyed on the next update.
type Health struct {
	scene.ComponentBase
	Health    int
	MaxHealth int
}

func NewHealth() *Health {
	return &Health{Health: DefaultHealth, MaxHealth: 100}
}

func (h *Health) Serialize(t *props.Table) {
	props.Serialize(t, "health", &h.Health, DefaultHealth)
	props.Serialize(t, "max_health", &h.MaxHealth, 100)
}

// Damage subtracts amount, clamped to [0, MaxHealth].
func (h *Health) Damage(amount int) {
	h.Health = min(max(h.Health-amount, 0), h.MaxHealth)
}

func (h *Health) Dead() bool { return h.Health <= 0 }

func (h *Health) Update(_ time.Duration) {
	if h.Dead() {
		h.GameObject().Destroy()
	}
}

// Shield absorbs damage for objects within Radius of its owner.
type Shield struct {
	scene.ComponentBase
	Radius float32
	Active bool
}

func NewShield() *Shield {
	return &Shield{Radius: DefaultShieldRadius, Active: true}
}

func (s *Shield) Serialize(t *props.Table) {
	props.Serialize(t, "radius", &s.Radius, DefaultShieldRadius)
	props.Serialize(t, "active", &s.Active, true)
}

// Covers reports whether g is inside the shield.
func (s *Shield) Covers(g *scene.GameObject) bool {
	if !s.Active {
		return false
	}
	d := g.Transform().WorldPosition().Sub(s.Transform().WorldPosition())
	return d.Len() <= s.Radius
}
