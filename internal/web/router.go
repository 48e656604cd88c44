// Package web serves the dashboard over HTTP.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickyboard/internal/platform"
	"github.com/aretw0/stickyboard/pkg/board"
	"github.com/aretw0/stickyboard/pkg/notify"
	"github.com/aretw0/stickyboard/pkg/remote"
	"github.com/aretw0/stickyboard/pkg/session"
	"github.com/aretw0/stickyboard/pkg/todos"
)

// DefaultCity is shown by the weather panel when no city is requested.
const DefaultCity = "Cairo"

type handler struct {
	board       *board.Board
	todos       *todos.State
	hub         *notify.Hub
	remote      *remote.Client
	weather     *remote.Weather
	sessions    *session.Manager
	logger      *slog.Logger
	defaultCity string
}

// NewRouter builds the gin engine serving app.
func NewRouter(app *platform.App, defaultCity string) *gin.Engine {
	if defaultCity == "" {
		defaultCity = DefaultCity
	}
	h := &handler{
		board:       app.Board,
		todos:       app.Todos,
		hub:         app.Hub,
		remote:      app.Remote,
		weather:     app.Weather,
		sessions:    app.Sessions,
		logger:      app.Logger,
		defaultCity: defaultCity,
	}

	router := gin.New()
	router.Use(requestLogger(app.Logger))
	router.Use(gin.Recovery())
	router.Use(h.HandleSessionMiddleware)
	registerRoutes(router, h)
	return router
}

func registerRoutes(router *gin.Engine, h *handler) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})
	router.GET("/login", h.HandleLoginStatus)
	router.POST("/login", h.HandleLogin)
	router.POST("/logout", h.HandleLogout)

	dashboard := router.Group("/dashboard", h.HandleAuthMiddleware)
	dashboard.GET("", h.HandleDashboard)
	dashboard.GET("/users/:id", h.HandleUserDetail)
	dashboard.POST("/users/:id/todos/:todoID/toggle", h.HandleToggleTodo)

	dashboard.GET("/notes", h.HandleListNotes)
	dashboard.POST("/notes", h.HandleCreateNote)
	dashboard.DELETE("/notes/:id", h.HandleDeleteNote)
	dashboard.PUT("/notes/:id/priority", h.HandleSetPriority)

	dashboard.GET("/analytics", h.HandleAnalytics)
	dashboard.GET("/analytics/stream", h.HandleAnalyticsStream)
	dashboard.GET("/weather", h.HandleWeather)

	router.NoRoute(func(c *gin.Context) {
		abort(c, newNotFoundError("404 - Not found"))
	})
}
