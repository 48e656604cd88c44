package web

import (
	"context"
	"net"
	"net/http"

	"github.com/aretw0/stickyboard/internal/platform"
)

// NewServer returns an http.Server serving app on addr. Request contexts
// derive from ctx, so cancelling it ends open analytics streams and lets
// Shutdown drain.
func NewServer(ctx context.Context, addr string, app *platform.App, defaultCity string) *http.Server {
	return &http.Server{
		Addr:        addr,
		Handler:     NewRouter(app, defaultCity),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
}
