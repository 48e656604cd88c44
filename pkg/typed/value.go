// Package typed provides type-safe access to values kept in a core.Store.
package typed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/stickyboard/pkg/core"
)

// Value binds a store key to a Go type.
// Get never fails: a missing key or a malformed stored value yields the default.
type Value[T any] struct {
	store  core.Store
	key    string
	def    func() T
	logger *slog.Logger
}

// Option configures a Value.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report swallowed corruption.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewValue creates a typed wrapper around key.
// def builds a fresh default for each Get so callers may mutate the result.
func NewValue[T any](store core.Store, key string, def func() T, opts ...Option) *Value[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if def == nil {
		def = func() T {
			var zero T
			return zero
		}
	}
	return &Value[T]{store: store, key: key, def: def, logger: logger}
}

// Key returns the bound storage key.
func (v *Value[T]) Key() string {
	return v.key
}

// Get reads and decodes the stored value.
func (v *Value[T]) Get(ctx context.Context) T {
	out, err := v.Load(ctx)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			v.logger.Debug("falling back to default", "key", v.key, "error", err)
		}
		return v.def()
	}
	return out
}

// Load is Get with the failure reported instead of swallowed.
// It returns core.ErrNotFound for a missing key and core.ErrStorageCorrupt
// for a value that does not decode into T.
func (v *Value[T]) Load(ctx context.Context) (T, error) {
	raw, err := v.store.Read(ctx, v.key)
	if err != nil {
		var zero T
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", core.ErrStorageCorrupt, v.key, err)
	}
	return out, nil
}

// Set encodes and persists val synchronously.
func (v *Value[T]) Set(ctx context.Context, val T) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", v.key, err)
	}
	return v.store.Write(ctx, v.key, data)
}
