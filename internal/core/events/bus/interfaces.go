package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus.
//
// Delivery is synchronous: Publish runs handlers on the caller's goroutine,
// which for scene events is the main loop. Handlers that hand data to other
// goroutines must not block.
type EventBus interface {
	// Publish delivers the event to subscribers of event.Type and to
	// wildcard subscribers. Handler errors are joined and returned.
	Publish(event Event) error
	// Subscribe registers a handler for one event type. The empty type, or
	// Any, receives every event.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. It is safe to call with nil.
	Unsubscribe(Subscription) error
	// Subscribers returns the number of active subscriptions.
	Subscribers() int
}

// Any subscribes to every event type.
const Any = ""

// Event types published by the scene core.
const (
	GameObjectCreated = "gameobject.created"
	GameObjectDeleted = "gameobject.deleted"
	SceneOpened       = "scene.opened"
	SceneSaved        = "scene.saved"
	ResourceReloaded  = "resource.reloaded"
)

// Event is an immutable message transported by the EventBus.
type Event struct {
	Type      string    `json:"type"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// NewEvent stamps an event with the current time.
func NewEvent(typ, src string, data any) Event {
	return Event{Type: typ, Source: src, Timestamp: time.Now(), Data: data}
}

// GameObjectInfo is the payload of the gameobject.* events.
type GameObjectInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefab string `json:"prefab,omitempty"`
}

// SceneInfo is the payload of the scene.* events.
type SceneInfo struct {
	Path    string `json:"path"`
	Objects int    `json:"objects"`
}

type (
	// EventHandler is invoked per delivered event.
	EventHandler func(event Event) error
)

// Subscription represents a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}
