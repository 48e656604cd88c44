package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/stickyboard/pkg/core"
)

// DefaultRoutes maps storage keys to the topic that announces their change.
var DefaultRoutes = map[string]string{
	core.TodoStatesKey: core.TopicTodosUpdated,
	core.NotesKey:      core.TopicNotesUpdated,
}

// Bridge forwards storage changes made by other writers to the hub as
// Invalidate signals. Storage events only say that a key changed, so
// subscribers must re-read the value themselves.
//
// It returns once watching has started; forwarding stops when ctx is done.
func Bridge(ctx context.Context, store core.Watchable, pub core.Publisher, routes map[string]string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if routes == nil {
		routes = DefaultRoutes
	}

	events, err := store.Watch(ctx, "*")
	if err != nil {
		return fmt.Errorf("failed to watch store: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				topic, ok := routes[e.Key]
				if !ok {
					continue
				}
				logger.Debug("storage change", "key", e.Key, "type", string(e.Type), "topic", topic)
				pub.Publish(topic, core.Invalidate())
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		logger.Error("bridge stopped", "error", err)
	}))

	return nil
}
