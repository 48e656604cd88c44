// Package lifecycle exposes store change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/stickyboard/pkg/core"
)

type storeSource struct {
	events <-chan core.Event
	keys   []string
	out    chan lifecycle.Event
}

// NewSource wraps a store watch channel. When keys are given only events
// for those keys are forwarded. The Events channel is closed when the input
// closes or the Start context ends.
func NewSource(events <-chan core.Event, keys ...string) lifecycle.Source {
	return &storeSource{
		events: events,
		keys:   keys,
		out:    make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *storeSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.events:
			if !ok {
				return nil
			}
			e = ev
		}
		if len(s.keys) > 0 && !slices.Contains(s.keys, e.Key) {
			continue
		}
		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
