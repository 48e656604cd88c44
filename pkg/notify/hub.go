// Package notify implements the explicit publish/subscribe hub that lets one
// view announce a change so other mounted views recompute without sharing
// in-memory state.
package notify

import (
	"log/slog"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/stickyboard/pkg/core"
)

// Handler receives signals published on a topic.
type Handler func(core.Signal)

type subscription struct {
	topic   string
	handler Handler
}

// Hub fans signals out to the subscribers of a topic.
// Delivery is synchronous: Publish returns after every subscriber that was
// registered when it was called has run. Late subscribers get no replay.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscription]struct{}
	logger *slog.Logger

	published uint64
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subs:   make(map[string]map[*subscription]struct{}),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers handler on topic and returns its unsubscribe function.
// Calling the returned function more than once is harmless.
func (h *Hub) Subscribe(topic string, handler Handler) (unsubscribe func()) {
	sub := &subscription{topic: topic, handler: handler}

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[topic], sub)
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
		})
	}
}

// Publish delivers sig to the current subscribers of topic.
// Handlers run outside the hub lock, so they may subscribe or unsubscribe.
// A panicking handler is logged and does not prevent delivery to the rest.
func (h *Hub) Publish(topic string, sig core.Signal) {
	h.mu.Lock()
	h.published++
	targets := make([]*subscription, 0, len(h.subs[topic]))
	for sub := range h.subs[topic] {
		targets = append(targets, sub)
	}
	h.mu.Unlock()

	h.logger.Debug("publishing", "topic", topic, "kind", sig.Kind.String(), "subscribers", len(targets))

	for _, sub := range targets {
		h.deliver(sub, sig)
	}
}

func (h *Hub) deliver(sub *subscription, sig core.Signal) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("subscriber panic", "topic", sub.topic, "panic", r)
		}
	}()
	// Each subscriber gets its own copy of the payload.
	if sig.Kind == core.SignalUpdated {
		sig.Overrides = sig.Overrides.Clone()
	}
	sub.handler(sig)
}

// Subscribers returns the number of handlers registered on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// HubState exposes internal state for observability.
type HubState struct {
	Topics    map[string]int `json:"topics"`
	Published uint64         `json:"published"`
}

// State implements introspection.Introspectable.
func (h *Hub) State() any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	topics := make(map[string]int, len(h.subs))
	for t, subs := range h.subs {
		topics[t] = len(subs)
	}
	return HubState{Topics: topics, Published: h.published}
}

// ComponentType implements introspection.Component.
func (h *Hub) ComponentType() string {
	return "hub"
}

var _ core.Publisher = (*Hub)(nil)
var _ introspection.Introspectable = (*Hub)(nil)
var _ introspection.Component = (*Hub)(nil)
