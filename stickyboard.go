package stickyboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/stickyboard/internal/platform"
	"github.com/aretw0/stickyboard/pkg/core"
)

// --- Types ---

// App is the wired dashboard: store, board, todo overrides, hub, remote
// clients and sessions.
type App = platform.App

// --- Configuration ---

// Option defines a functional option for configuring stickyboard.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore injects a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithForceTemp forces the data directory into the system temp dir.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithEventBuffer sets the buffer size of watch channels.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temp-dir sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithRemote points the users/posts/todos client at baseURL.
func WithRemote(baseURL string, timeout time.Duration) Option {
	return platform.WithRemote(baseURL, timeout)
}

// WithHTTPClient sets the client used for remote and weather requests.
func WithHTTPClient(hc *http.Client) Option {
	return platform.WithHTTPClient(hc)
}

// WithWeather configures the weather lookup.
func WithWeather(baseURL, apiKey, units string) Option {
	return platform.WithWeather(baseURL, apiKey, units)
}

// WithCredentials sets the account accepted by the login gate.
func WithCredentials(username, password string) Option {
	return platform.WithCredentials(username, password)
}

// --- Factory ---

// New initializes storage at uri and wires every component.
func New(uri string, opts ...Option) (*App, error) {
	return platform.New(uri, opts...)
}

// Init only builds and initializes the store.
func Init(uri string, opts ...Option) (core.Store, error) {
	return platform.Init(uri, opts...)
}
