package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/scenekit/internal/core/events/bus"
	"github.com/zeusync/scenekit/internal/core/observability/log"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleWebSocket streams every bus event to the client as JSON. Bus
// handlers run on the main loop, so events are queued and dropped for
// clients that do not keep up.
func (i *Inspector) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if i.scene.Bus == nil {
		http.Error(w, "no event bus", http.StatusNotFound)
		return
	}

	events := make(chan bus.Event, i.config.EventBuffer)
	sub, err := i.scene.Bus.Subscribe(bus.Any, func(e bus.Event) error {
		select {
		case events <- e:
		default:
		}
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer func() { _ = i.scene.Bus.Unsubscribe(sub) }()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		i.logger.Debug("Websocket upgrade failed", log.Error(err))
		return
	}
	i.mu.Lock()
	i.conns[conn] = struct{}{}
	i.mu.Unlock()
	defer func() {
		i.mu.Lock()
		delete(i.conns, conn)
		i.mu.Unlock()
		_ = conn.Close()
	}()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	i.logger.Debug("Websocket client connected", log.String("remote", conn.RemoteAddr().String()))
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case e := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				i.logger.Debug("Websocket write failed", log.Error(err))
				return
			}
		}
	}
}
