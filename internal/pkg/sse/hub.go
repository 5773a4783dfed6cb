package sse

import (
	"sync"
)

// Topics services publish change notifications on. Subscribers are
// expected to re-fetch the affected collection; events carry no diffs.
const (
	TopicAttendance = "attendance"
	TopicEmployees  = "employees"
	TopicSettings   = "settings"
)

// State describes the delivery state of a topic channel.
type State string

const (
	// StateConnected means at least one live subscriber is attached.
	StateConnected State = "connected"
	// StateDisconnected means the topic exists but nobody listens.
	StateDisconnected State = "disconnected"
	// StateMock means realtime is disabled by configuration; events
	// are dropped and the state is reported as such.
	StateMock State = "mock"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Topic string
	Event string
	Data  interface{}
}

// Hub manages SSE subscribers and event broadcasting, keyed by topic.
type Hub struct {
	mu          sync.RWMutex
	enabled     bool
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance. When enabled is false the hub
// runs in mock mode: Subscribe still works but Publish drops events.
func NewHub(enabled bool) *Hub {
	return &Hub{
		enabled:     enabled,
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a topic and returns the
// event channel and cleanup function.
func (h *Hub) Subscribe(topic string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[topic], ch)
		close(ch)
		if len(h.subscribers[topic]) == 0 {
			delete(h.subscribers, topic)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a topic. In mock mode
// the event is dropped.
func (h *Hub) Publish(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.enabled {
		return
	}

	event.Topic = topic
	if subs, ok := h.subscribers[topic]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// PublishToMany sends the same event to multiple topics.
func (h *Hub) PublishToMany(topics []string, event Event) {
	for _, topic := range topics {
		h.Publish(topic, event)
	}
}

// TopicState reports the tri-valued channel state for a topic.
func (h *Hub) TopicState(topic string) State {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.enabled {
		return StateMock
	}
	if subs, ok := h.subscribers[topic]; ok && len(subs) > 0 {
		return StateConnected
	}
	return StateDisconnected
}

// SubscriberCount returns the number of active subscribers for a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[topic]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers across all topics
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
