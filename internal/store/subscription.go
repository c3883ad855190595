package store

import (
	"sync"

	json "github.com/goccy/go-json"
)

const subscriptionBuffer = 16

// Event is a single update delivered to a subscriber. Payload is the already
// marshalled document for the topic.
type Event struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Subscription receives events for a set of topics until cancelled.
type Subscription struct {
	C chan Event

	hub    *Hub
	topics []string
	once   sync.Once
}

// Cancel detaches the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.C)
	})
}

// Hub fans update events out to topic subscribers. Publishing never blocks:
// when a subscriber's buffer is full the event is dropped for that subscriber.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, subscriptionBuffer),
		hub:    h,
		topics: topics,
	}
	h.mu.Lock()
	for _, t := range topics {
		set, ok := h.subs[t]
		if !ok {
			set = make(map[*Subscription]struct{})
			h.subs[t] = set
		}
		set[sub] = struct{}{}
	}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Publish(topic string, payload json.RawMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[topic] {
		select {
		case sub.C <- Event{Topic: topic, Payload: payload}:
		default:
		}
	}
}

// Len reports the number of open subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	seen := make(map[*Subscription]struct{})
	for _, set := range h.subs {
		for sub := range set {
			seen[sub] = struct{}{}
		}
	}
	return len(seen)
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range sub.topics {
		if set, ok := h.subs[t]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, t)
			}
		}
	}
}
