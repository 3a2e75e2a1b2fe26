//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/scenekit/internal/config"
	"github.com/zeusync/scenekit/internal/core/scene"
	"github.com/zeusync/scenekit/internal/engine"
)

// InitializeEngine wires a runnable engine from the configuration.
func InitializeEngine(cfg *config.Config) (*engine.Engine, func(), error) {
	wire.Build(EngineSet)
	return nil, nil, nil
}

// InitializeSceneContext wires the scene context without the engine loop,
// for offline tools.
func InitializeSceneContext(cfg *config.Config) (*scene.Context, func(), error) {
	wire.Build(CoreSet)
	return nil, nil, nil
}
