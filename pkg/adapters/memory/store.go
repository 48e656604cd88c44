// Package memory implements core.Store in process memory.
//
// It backs per-session storage and tests. Handles created with Peer share
// the same data but act as distinct writers, so a watcher on one handle
// observes writes made through another, the way one browser tab observes
// storage changes made by a sibling tab.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/stickyboard/pkg/core"
)

type watcher struct {
	owner   *Store
	pattern string
	ch      chan core.Event
}

type shared struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[*watcher]struct{}
}

// Store is a handle on a shared in-memory key space.
type Store struct {
	s *shared

	mu        sync.Mutex
	failWrite error
}

// New creates an empty store.
func New() *Store {
	return &Store{s: &shared{
		data:     make(map[string][]byte),
		watchers: make(map[*watcher]struct{}),
	}}
}

// Peer returns another writer on the same data.
func (st *Store) Peer() *Store {
	return &Store{s: st.s}
}

// FailWrites makes every subsequent Write on this handle return err.
// Passing nil restores normal behaviour.
func (st *Store) FailWrites(err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.failWrite = err
}

func (st *Store) Initialize(ctx context.Context) error { return nil }

func (st *Store) Read(ctx context.Context, key string) ([]byte, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	v, ok := st.s.data[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (st *Store) Write(ctx context.Context, key string, data []byte) error {
	st.mu.Lock()
	failErr := st.failWrite
	st.mu.Unlock()
	if failErr != nil {
		return failErr
	}

	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	eType := core.EventModify
	if _, ok := st.s.data[key]; !ok {
		eType = core.EventCreate
	}
	st.s.data[key] = slices.Clone(data)
	st.notifyLocked(eType, key)
	return nil
}

func (st *Store) Remove(ctx context.Context, key string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if _, ok := st.s.data[key]; !ok {
		return nil
	}
	delete(st.s.data, key)
	st.notifyLocked(core.EventDelete, key)
	return nil
}

func (st *Store) Keys(ctx context.Context) ([]string, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	keys := make([]string, 0, len(st.s.data))
	for k := range st.s.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Watch reports changes made through other handles on the same data.
// The channel is closed when ctx is done. Events are dropped if the
// consumer falls more than 64 events behind.
func (st *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	w := &watcher{owner: st, pattern: pattern, ch: make(chan core.Event, 64)}

	st.s.mu.Lock()
	st.s.watchers[w] = struct{}{}
	st.s.mu.Unlock()

	go func() {
		<-ctx.Done()
		st.s.mu.Lock()
		delete(st.s.watchers, w)
		close(w.ch)
		st.s.mu.Unlock()
	}()

	return w.ch, nil
}

// notifyLocked must be called with st.s.mu held for writing.
func (st *Store) notifyLocked(eType core.EventType, key string) {
	e := core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()}
	for w := range st.s.watchers {
		if w.owner == st {
			continue
		}
		if ok, _ := doublestar.Match(w.pattern, key); !ok {
			continue
		}
		select {
		case w.ch <- e:
		default:
		}
	}
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
