package platform

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/stickyboard/pkg/board"
	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/notify"
	"github.com/aretw0/stickyboard/pkg/remote"
	"github.com/aretw0/stickyboard/pkg/session"
	"github.com/aretw0/stickyboard/pkg/todos"
)

// App wires the dashboard components around one store and one hub.
type App struct {
	Store    *core.Service
	Board    *board.Board
	Todos    *todos.State
	Hub      *notify.Hub
	Remote   *remote.Client
	Weather  *remote.Weather
	Sessions *session.Manager
	Logger   *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	unsubs  []func()
	bridged bool
}

// New initializes the store and builds every component.
//
//	app, err := platform.New("./data", platform.WithAdapter("sqlite"))
func New(uri string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx := context.Background()
	raw, err := initStore(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	svcOpts := []core.ServiceOption{core.WithServiceLogger(logger)}
	if size, ok := o.config["event_buffer"].(int); ok {
		svcOpts = append(svcOpts, core.WithEventBuffer(size))
	}
	svc := core.NewService(raw, svcOpts...)

	username, _ := o.config["auth_username"].(string)
	password, _ := o.config["auth_password"].(string)
	if username == "" && password == "" {
		username, password = "youssef", "marzouk2024"
	}
	gate, err := session.NewGate(username, password)
	if err != nil {
		return nil, err
	}

	hc, _ := o.config["http_client"].(*http.Client)
	baseURL, _ := o.config["remote_base_url"].(string)
	timeout, _ := o.config["remote_timeout"].(time.Duration)
	clientOpts := []remote.ClientOption{remote.WithClientLogger(logger)}
	if hc != nil {
		clientOpts = append(clientOpts, remote.WithHTTPClient(hc))
	}
	if timeout > 0 {
		clientOpts = append(clientOpts, remote.WithTimeout(timeout))
	}

	weatherURL, _ := o.config["weather_base_url"].(string)
	apiKey, _ := o.config["weather_api_key"].(string)
	units, _ := o.config["weather_units"].(string)

	hub := notify.NewHub(notify.WithLogger(logger))

	return &App{
		Store:    svc,
		Board:    board.Open(ctx, svc, board.WithLogger(logger)),
		Todos:    todos.NewState(svc, hub, logger),
		Hub:      hub,
		Remote:   remote.NewClient(baseURL, clientOpts...),
		Weather:  remote.NewWeather(weatherURL, apiKey, units, hc, logger),
		Sessions: session.NewManager(gate, logger),
		Logger:   logger,
	}, nil
}

// Start follows changes made by other writers of the same store: the board
// reloads on notes-updated and todos-updated subscribers receive Invalidate.
// Stores that cannot be watched are accepted; the app then only sees its own writes.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.unsubs = append(a.unsubs, a.Hub.Subscribe(core.TopicNotesUpdated, func(sig core.Signal) {
		if sig.Kind == core.SignalInvalidate {
			a.Board.Reload(ctx)
		}
	}))

	err := notify.Bridge(ctx, a.Store, a.Hub, notify.DefaultRoutes, a.Logger)
	if errors.Is(err, core.ErrWatchUnsupported) {
		a.Logger.Debug("store is not watchable; cross-process changes will not be seen")
		return nil
	}
	if err != nil {
		return err
	}
	a.bridged = true
	return nil
}

// Close stops background work and releases the store.
func (a *App) Close() error {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.unsubs = nil
	a.bridged = false
	a.mu.Unlock()

	if c, ok := a.Store.Store().(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// AppState exposes internal state for observability.
type AppState struct {
	Notes    int  `json:"notes"`
	Sessions int  `json:"sessions"`
	Bridged  bool `json:"bridged"`
	Store    any  `json:"store,omitempty"`
	Hub      any  `json:"hub"`
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	a.mu.Lock()
	bridged := a.bridged
	a.mu.Unlock()

	st := AppState{
		Notes:    a.Board.Len(),
		Sessions: a.Sessions.Len(),
		Bridged:  bridged,
		Hub:      a.Hub.State(),
	}
	if in, ok := a.Store.Store().(introspection.Introspectable); ok {
		st.Store = in.State()
	}
	return st
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "app"
}

var _ introspection.Introspectable = (*App)(nil)
var _ introspection.Component = (*App)(nil)
