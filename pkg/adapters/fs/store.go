// Package fs implements core.Store on the local filesystem.
//
// Each key is kept in its own JSON file (<dir>/<key>.json) and written
// atomically. The store is Watchable: changes made by other processes
// sharing the directory are reported through fsnotify, while writes made
// through the same Store value are suppressed.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/stickyboard/pkg/core"
)

// FileExt is appended to every key to build its file name.
const FileExt = ".json"

// Store implements core.Store using one file per key.
type Store struct {
	Path   string
	config Config
	cache  *cache

	mu            sync.RWMutex
	readOnly      bool
	selfWrites    map[string][]byte // last bytes written by this store, per key
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error)  // Called for runtime watcher failures.
	Debounce     time.Duration // Zero means 50ms.
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Store{
		Path:       config.Path,
		config:     config,
		cache:      newCache(),
		readOnly:   config.ReadOnly,
		selfWrites: make(map[string][]byte),
	}
}

// Initialize performs the necessary setup for the store (mkdir).
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.readOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (s *Store) filename(key string) string {
	return filepath.Join(s.Path, key+FileExt)
}

// Read returns the bytes stored under key.
// Unchanged files are served from an mtime-validated cache.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	path := s.filename(key)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		s.cache.Delete(key)
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", key, err)
	}

	if data, ok := s.cache.Get(key, info.ModTime(), info.Size()); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	s.cache.Set(key, data, info.ModTime(), int64(len(data)))
	return slices.Clone(data), nil
}

// Write persists data under key atomically (temp file + rename).
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if s.isReadOnly() {
		return core.ErrReadOnly
	}

	path := s.filename(key)

	// Record before writing so the watcher can recognise its own echo.
	s.mu.Lock()
	s.selfWrites[key] = slices.Clone(data)
	s.mu.Unlock()

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		s.cache.Set(key, data, info.ModTime(), info.Size())
	}

	s.config.Logger.Debug("value written", "key", key, "bytes", len(data))
	return nil
}

// Remove deletes the file for key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if s.isReadOnly() {
		return core.ErrReadOnly
	}

	s.mu.Lock()
	s.selfWrites[key] = nil
	s.mu.Unlock()
	s.cache.Delete(key)

	if err := os.Remove(s.filename(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Keys lists every stored key in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory: %w", err)
	}

	var keys []string
	for _, e := range entries {
		if key, ok := keyFromName(e.Name()); ok && !e.IsDir() {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// keyFromName maps a file name back to its key, skipping temp files.
func keyFromName(name string) (string, bool) {
	if strings.HasPrefix(name, TempFilePrefix) || !strings.HasSuffix(name, FileExt) {
		return "", false
	}
	key := strings.TrimSuffix(name, FileExt)
	if core.ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}

// isSelfEcho reports whether the current content of key is what this
// store last wrote, meaning a filesystem event was caused by us.
func (s *Store) isSelfEcho(key string, eType core.EventType) bool {
	s.mu.RLock()
	last, ok := s.selfWrites[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if eType == core.EventDelete {
		return last == nil
	}

	current, err := os.ReadFile(s.filename(key))
	if err != nil {
		return false
	}
	return last != nil && slices.Equal(current, last)
}

func (s *Store) isReadOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readOnly
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
