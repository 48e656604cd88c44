// Package todos keeps the user's completion overrides for remote todos.
package todos

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/typed"
)

// State reads and writes the persisted override map and announces every
// change on core.TopicTodosUpdated with the full map as payload.
type State struct {
	mu     sync.Mutex
	value  *typed.Value[core.Overrides]
	pub    core.Publisher
	logger *slog.Logger
}

// NewState binds the override map stored in store. pub may be nil.
func NewState(store core.Store, pub core.Publisher, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &State{
		value:  typed.NewValue(store, core.TodoStatesKey, func() core.Overrides { return core.Overrides{} }, typed.WithLogger(logger)),
		pub:    pub,
		logger: logger,
	}
}

// Load returns the current override map; missing or corrupt data is empty.
func (s *State) Load(ctx context.Context) core.Overrides {
	o := s.value.Get(ctx)
	if o == nil {
		return core.Overrides{}
	}
	return o
}

// Toggle flips the effective completion of todoID, where remote is the
// completion flag reported by the remote provider.
func (s *State) Toggle(ctx context.Context, todoID int, remote bool) (core.Overrides, error) {
	return s.update(ctx, func(o core.Overrides) {
		o[todoID] = !o.Effective(todoID, remote)
	})
}

// Set records an explicit completion value for todoID.
func (s *State) Set(ctx context.Context, todoID int, completed bool) (core.Overrides, error) {
	return s.update(ctx, func(o core.Overrides) {
		o[todoID] = completed
	})
}

func (s *State) update(ctx context.Context, mutate func(core.Overrides)) (core.Overrides, error) {
	s.mu.Lock()
	next := s.Load(ctx).Clone()
	mutate(next)
	if err := s.value.Set(ctx, next); err != nil {
		s.mu.Unlock()
		s.logger.Error("failed to persist todo overrides", "error", err)
		return nil, err
	}
	s.mu.Unlock()

	// Publish outside the lock so subscribers may call back into State.
	if s.pub != nil {
		s.pub.Publish(core.TopicTodosUpdated, core.Updated(next))
	}
	return next, nil
}
