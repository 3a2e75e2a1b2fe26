// Package metrics holds the prometheus collectors of the scene core.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scenekit"

// Metrics groups the collectors updated by the scene manager and the
// resource registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	gameObjects      prometheus.Gauge
	sceneOps         *prometheus.CounterVec
	sceneOpDuration  *prometheus.HistogramVec
	resourceLoads    *prometheus.CounterVec
	droppedComponent *prometheus.CounterVec
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gameObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gameobjects_live",
			Help:      "Number of live game objects registered with the scene manager.",
		}),
		sceneOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_operations_total",
			Help:      "Scene open/save operations by outcome.",
		}, []string{"op", "result"}),
		sceneOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scene_operation_duration_seconds",
			Help:      "Duration of scene open/save operations.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"op"}),
		resourceLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resource_loads_total",
			Help:      "Resource loads by kind and outcome (hit, loaded, reloaded, error).",
		}, []string{"kind", "result"}),
		droppedComponent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_components_total",
			Help:      "Component tables ignored on load because their type is unknown.",
		}, []string{"type"}),
	}
	m.registry.MustRegister(m.gameObjects, m.sceneOps, m.sceneOpDuration, m.resourceLoads, m.droppedComponent)
	return m
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

func (m *Metrics) SetGameObjects(n int) {
	if m == nil {
		return
	}
	m.gameObjects.Set(float64(n))
}

// SceneOp records one scene open or save.
func (m *Metrics) SceneOp(op string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sceneOps.WithLabelValues(op, result).Inc()
	m.sceneOpDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ResourceLoad(kind, result string) {
	if m == nil {
		return
	}
	m.resourceLoads.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) DroppedComponent(typeName string) {
	if m == nil {
		return
	}
	m.droppedComponent.WithLabelValues(typeName).Inc()
}
