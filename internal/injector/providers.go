package injector

import (
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/scenekit/internal/config"
	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/observability/metrics"
	"github.com/zeusync/scenekit/internal/core/resource"
	"github.com/zeusync/scenekit/internal/core/scene"
	"github.com/zeusync/scenekit/internal/core/scene/components"
	"github.com/zeusync/scenekit/internal/engine"
	"github.com/zeusync/scenekit/internal/server"
)

// CoreSet provides everything below the engine loop.
var CoreSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	metrics.New,
	bus.New,
	ProvideStore,
	ProvideRegistry,
	ProvideSceneContext,
)

// EngineSet adds the engine and its inspector.
var EngineSet = wire.NewSet(
	CoreSet,
	ProvideInspector,
	engine.New,
)

func ProvideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	l, err := log.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = l.Sync() }, nil
}

// ProvideStore opens the resource store selected by the configuration.
func ProvideStore(cfg *config.Config) (resource.Store, func(), error) {
	var (
		store resource.Store
		err   error
	)
	switch cfg.Resources.Store {
	case config.StoreFS:
		store = resource.NewFileStore(cfg.Resources.Root)
	case config.StoreBadger:
		store, err = resource.OpenBadgerStore(resource.BadgerOptions{
			Dir:      cfg.Resources.BadgerDir,
			Compress: cfg.Resources.Compress,
		})
	default:
		err = fmt.Errorf("%w: unknown resource store %q", config.ErrInvalid, cfg.Resources.Store)
	}
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func ProvideRegistry(store resource.Store, l log.Log, m *metrics.Metrics) *resource.Registry {
	return resource.NewRegistry(store, l, m)
}

// ProvideSceneContext builds the scene context with the built-in components.
func ProvideSceneContext(l log.Log, r *resource.Registry, b bus.EventBus, m *metrics.Metrics) *scene.Context {
	sc := scene.NewContext(l, r, b, m)
	components.Register(sc.Factory)
	return sc
}

// ProvideInspector returns nil when the inspector is disabled.
func ProvideInspector(cfg *config.Config, sc *scene.Context, l log.Log) engine.Inspector {
	if !cfg.Inspector.Enabled {
		return nil
	}
	c := server.DefaultConfig()
	c.Addr = cfg.Inspector.Addr
	return server.NewInspector(c, sc, l)
}
