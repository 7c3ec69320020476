// Package broadcast fans rendered chat messages out to other members
// of a room. Delivery is best effort and at most once: the sender
// always renders its own message locally, so a dropped broadcast only
// affects other listeners.
package broadcast

import (
	"sync"

	"ulapchat/model"
)

// Transport publishes messages to a room and hands out subscriptions.
type Transport interface {
	Publish(room string, msg model.Message)
	Subscribe(room string) (<-chan model.Message, func())
}

// subscriberBuffer bounds each subscriber channel. A slow subscriber
// loses messages rather than blocking the publisher.
const subscriberBuffer = 16

// Hub is an in-process Transport. It carries no persistence and makes
// no ordering promises across rooms.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[int]chan model.Message
	next  int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[int]chan model.Message)}
}

// Publish delivers msg to every current subscriber of room. Subscribers
// whose buffers are full are skipped.
func (h *Hub) Publish(room string, msg model.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.rooms[room] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribe registers a listener on room. The returned cancel function
// removes the subscription and closes the channel; it is safe to call
// more than once.
func (h *Hub) Subscribe(room string) (<-chan model.Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[int]chan model.Message)
	}

	id := h.next
	h.next++
	ch := make(chan model.Message, subscriberBuffer)
	h.rooms[room][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.rooms[room], id)
			if len(h.rooms[room]) == 0 {
				delete(h.rooms, room)
			}
			close(ch)
		})
	}

	return ch, cancel
}
