// Package server exposes a read-only view of the running engine over HTTP:
// a text snapshot of the scene, a websocket stream of scene events and the
// prometheus metrics.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zeusync/scenekit/internal/core/observability/log"
	"github.com/zeusync/scenekit/internal/core/scene"
)

// Config holds inspector settings.
type Config struct {
	Addr string
	// SnapshotTimeout bounds the wait for the main loop on /scene.
	SnapshotTimeout time.Duration
	// EventBuffer is the number of events queued per websocket client
	// before events are dropped for it.
	EventBuffer int
}

func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:7070",
		SnapshotTimeout: 2 * time.Second,
		EventBuffer:     256,
	}
}

// Inspector serves the debug endpoints.
type Inspector struct {
	config Config
	scene  *scene.Context
	logger log.Log

	running  int32 // atomic bool
	server   *http.Server
	listener net.Listener
	wg       sync.WaitGroup

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewInspector(config Config, sc *scene.Context, logger log.Log) *Inspector {
	if config.SnapshotTimeout <= 0 {
		config.SnapshotTimeout = DefaultConfig().SnapshotTimeout
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultConfig().EventBuffer
	}
	return &Inspector{
		config: config,
		scene:  sc,
		logger: logger.With(log.String("component", "inspector")),
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// Handler routes /scene, /ws and /metrics.
func (i *Inspector) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /scene", i.handleScene)
	mux.HandleFunc("GET /ws", i.handleWebSocket)
	mux.Handle("GET /metrics", promhttp.HandlerFor(i.scene.Metrics.Registry(), promhttp.HandlerOpts{}))
	return mux
}

// Start listens on the configured address and serves in the background.
func (i *Inspector) Start(_ context.Context) error {
	if !atomic.CompareAndSwapInt32(&i.running, 0, 1) {
		return ErrAlreadyRunning
	}

	listener, err := net.Listen("tcp", i.config.Addr)
	if err != nil {
		atomic.StoreInt32(&i.running, 0)
		i.logger.Error("Failed to create listener", log.Error(err))
		return err
	}
	i.listener = listener
	i.server = &http.Server{Handler: i.Handler(), ReadHeaderTimeout: 5 * time.Second}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		if err := i.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			i.logger.Error("Inspector stopped serving", log.Error(err))
		}
	}()

	i.logger.Info("Inspector listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr returns the bound address while running.
func (i *Inspector) Addr() string {
	if i.listener == nil {
		return ""
	}
	return i.listener.Addr().String()
}

// Stop shuts the server down, waiting for in-flight requests until ctx is done.
func (i *Inspector) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&i.running, 1, 0) {
		return ErrNotRunning
	}
	err := i.server.Shutdown(ctx)
	// Shutdown does not track hijacked connections.
	i.mu.Lock()
	for conn := range i.conns {
		_ = conn.Close()
	}
	i.mu.Unlock()
	i.wg.Wait()
	i.logger.Info("Inspector stopped")
	return err
}

func (i *Inspector) handleScene(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), i.config.SnapshotTimeout)
	defer cancel()

	var text string
	m := i.scene.Manager
	if err := m.Call(ctx, func() { text = m.Snapshot() }); err != nil {
		http.Error(w, "main loop did not answer", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}
