// Package engine runs the frame loop that owns the scene graph.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/zeusync/scenekit/internal/config"
	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/scene"
)

// Inspector is the optional debug surface started with the engine.
type Inspector interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Engine ticks the scene manager at a fixed rate. Everything touching the
// scene graph runs on the goroutine calling Run; other goroutines go
// through Manager.Post.
type Engine struct {
	cfg       *config.Config
	scene     *scene.Context
	log       log.Log
	inspector Inspector

	frames atomic.Uint64
}

// New builds an engine. inspector may be nil.
func New(cfg *config.Config, sc *scene.Context, l log.Log, inspector Inspector) *Engine {
	return &Engine{
		cfg:       cfg,
		scene:     sc,
		log:       l.With(log.String("component", "engine")),
		inspector: inspector,
	}
}

func (e *Engine) Context() *scene.Context { return e.scene }

// Frames returns the number of frames run so far.
func (e *Engine) Frames() uint64 { return e.frames.Load() }

// Run opens the configured scene and ticks until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	m := e.scene.Manager
	if path := e.cfg.Engine.Scene; path != "" {
		if err := m.LoadScene(path); err != nil {
			return err
		}
	}

	if e.cfg.Resources.Watch && e.scene.Resources != nil {
		err := e.scene.Resources.Watch(ctx, func(path string) {
			m.Post(func() { e.reload(path) })
		})
		if err != nil {
			e.log.Warn("Resource watching disabled", log.Error(err))
		}
	}

	if e.inspector != nil {
		if err := e.inspector.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := e.inspector.Stop(stopCtx); err != nil {
				e.log.Warn("Inspector stop failed", log.Error(err))
			}
		}()
	}

	interval := e.cfg.Engine.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.Info("Engine started", log.Duration("tick", interval), log.String("scene", e.cfg.Engine.Scene))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			e.log.Info("Engine stopped", log.Uint64("frames", e.frames.Load()))
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case now := <-ticker.C:
			m.Update(now.Sub(last))
			last = now
			e.frames.Add(1)
		}
	}
}

func (e *Engine) reload(path string) {
	changed, err := e.scene.Manager.Reload(path)
	if err != nil {
		e.log.Warn("Reload failed", log.String("path", path), log.Error(err))
		return
	}
	if changed {
		e.log.Debug("Reload applied", log.String("path", path))
	}
}
