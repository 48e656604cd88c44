package analytics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/notify"
	"github.com/aretw0/stickyboard/pkg/remote"
)

// Subscriber is the part of the hub a View needs.
type Subscriber interface {
	Subscribe(topic string, handler notify.Handler) (unsubscribe func())
}

// OverrideSource reads the persisted override map.
type OverrideSource interface {
	Load(ctx context.Context) core.Overrides
}

// View is a mounted analytics panel. It keeps the fetched remote data and
// follows override changes published on core.TopicTodosUpdated.
type View struct {
	mu        sync.Mutex
	snapshot  remote.Snapshot
	overrides core.Overrides
	source    OverrideSource
	unsub     func()
	onChange  func(*Stats)
	logger    *slog.Logger
}

// NewView creates an unmounted view over snap.
func NewView(snap remote.Snapshot, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &View{snapshot: snap, overrides: core.Overrides{}, logger: logger}
}

// OnChange registers fn to be called with fresh stats after every applied signal.
// It must be set before Mount.
func (v *View) OnChange(fn func(*Stats)) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// Mount reads the current overrides and subscribes to updates.
// Mounting an already mounted view is a no-op.
func (v *View) Mount(ctx context.Context, hub Subscriber, source OverrideSource) {
	v.mu.Lock()
	if v.unsub != nil {
		v.mu.Unlock()
		return
	}
	v.source = source
	v.overrides = source.Load(ctx)
	v.mu.Unlock()

	unsub := hub.Subscribe(core.TopicTodosUpdated, func(sig core.Signal) {
		v.apply(ctx, sig)
	})

	v.mu.Lock()
	v.unsub = unsub
	v.mu.Unlock()
}

// Unmount stops following updates. It is safe to call more than once.
func (v *View) Unmount() {
	v.mu.Lock()
	unsub := v.unsub
	v.unsub = nil
	v.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Mounted reports whether the view is subscribed.
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.unsub != nil
}

// Stats recomputes the panel from the current inputs.
func (v *View) Stats() *Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.statsLocked()
}

func (v *View) statsLocked() *Stats {
	return Compute(v.snapshot.Users, v.snapshot.Posts, v.snapshot.Todos, v.overrides)
}

func (v *View) apply(ctx context.Context, sig core.Signal) {
	v.mu.Lock()
	switch sig.Kind {
	case core.SignalUpdated:
		v.overrides = sig.Overrides.Clone()
	case core.SignalInvalidate:
		if v.source != nil {
			v.overrides = v.source.Load(ctx)
		}
	default:
		v.mu.Unlock()
		v.logger.Warn("ignoring unknown signal", "kind", sig.Kind.String())
		return
	}
	v.logger.Debug("analytics refreshed", "signal", sig.Kind.String(), "overrides", len(v.overrides))
	stats := v.statsLocked()
	fn := v.onChange
	v.mu.Unlock()

	if fn != nil {
		fn(stats)
	}
}
