// Package components holds the gameplay components shipped with the
// engine. Register binds them to a factory under their persisted names.
package components

import "github.com/zeusync/scenekit/internal/core/scene"

// Register adds every component of this package to f.
func Register(f *scene.Factory) {
	f.Register("Health", func() scene.Component { return NewHealth() })
	f.Register("Shield", func() scene.Component { return NewShield() })
	f.Register("Windmill", func() scene.Component { return NewWindmill() })
	f.Register("Turret", func() scene.Component { return NewTurret() })
	f.Register("Helicopter", func() scene.Component { return NewHelicopter() })
	f.Register("Light", func() scene.Component { return NewLight() })
	f.Register("MeshRenderer", func() scene.Component { return NewMeshRenderer() })
}
