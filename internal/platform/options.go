package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/stickyboard/pkg/core"
)

// options holds the internal configuration for a stickyboard App.
type options struct {
	store   core.Store
	logger  *slog.Logger
	adapter string
	config  map[string]any
}

// Option defines a functional option for configuring stickyboard.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]any),
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a ready-made store (e.g. a mock), skipping the adapter factory.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default), "sqlite" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithForceTemp forces the data directory into the system temp dir.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithEventBuffer sets the buffer of the watch channel handed to consumers.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithReadOnly enables read-only mode.
// Writes return core.ErrReadOnly, the data directory is not created and the
// dev sandbox is bypassed.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
// By default (true) the data directory is re-rooted in the system temp dir.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithRemote points the users/posts/todos client at baseURL.
// A zero timeout leaves requests unbounded.
func WithRemote(baseURL string, timeout time.Duration) Option {
	return func(o *options) {
		o.config["remote_base_url"] = baseURL
		o.config["remote_timeout"] = timeout
	}
}

// WithHTTPClient sets the client used for remote and weather requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.config["http_client"] = hc
	}
}

// WithWeather configures the weather lookup.
func WithWeather(baseURL, apiKey, units string) Option {
	return func(o *options) {
		o.config["weather_base_url"] = baseURL
		o.config["weather_api_key"] = apiKey
		o.config["weather_units"] = units
	}
}

// WithCredentials sets the single account accepted by the login gate.
// Defaults to youssef / marzouk2024.
func WithCredentials(username, password string) Option {
	return func(o *options) {
		o.config["auth_username"] = username
		o.config["auth_password"] = password
	}
}
