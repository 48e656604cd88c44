package core

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/aretw0/lifecycle"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateKey rejects keys that cannot be mapped safely onto every adapter.
func ValidateKey(key string) error {
	if key == "" || !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Service fronts a Store with key validation and a decoupled event stream.
// It implements Store itself, so components depend on it like any adapter.
type Service struct {
	mu              sync.RWMutex
	store           Store
	logger          *slog.Logger
	eventBufferSize int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used by the service.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventBuffer sets the buffer between the adapter watcher and consumers.
// Zero or negative keeps the default (100).
func WithEventBuffer(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// NewService creates a new Service.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:           store,
		logger:          slog.New(slog.DiscardHandler),
		eventBufferSize: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the wrapped adapter.
func (s *Service) Store() Store {
	return s.store
}

func (s *Service) Initialize(ctx context.Context) error {
	return s.store.Initialize(ctx)
}

func (s *Service) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return s.store.Read(ctx, key)
}

func (s *Service) Write(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := s.store.Write(ctx, key, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, key, err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return s.store.Remove(ctx, key)
}

func (s *Service) Keys(ctx context.Context) ([]string, error) {
	return s.store.Keys(ctx)
}

// Watch observes changes in the store if supported.
// Events are copied into a buffered channel so a slow consumer never
// stalls the adapter's watcher.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	upstream, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	size := s.eventBufferSize
	s.mu.RUnlock()

	out := make(chan Event, size)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-upstream:
				if !ok {
					return nil
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("event buffer stopped", "error", err)
	}))
	return out, nil
}

var _ Store = (*Service)(nil)
var _ Watchable = (*Service)(nil)
