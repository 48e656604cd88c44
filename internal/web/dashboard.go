package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/stickyboard/pkg/analytics"
	"github.com/aretw0/stickyboard/pkg/remote"
)

// panel holds either data or the panel's own error.
type panel[T any] struct {
	Data  T           `json:"data,omitempty"`
	Error *panelError `json:"error,omitempty"`
}

func failed[T any](message string) panel[T] {
	return panel[T]{Error: &panelError{Error: message}}
}

type dashboardResponse struct {
	Users     panel[[]remote.User]     `json:"users"`
	Notes     notesResponse            `json:"notes"`
	Analytics panel[analyticsResponse] `json:"analytics"`
	Weather   panel[remote.Report]     `json:"weather"`
}

// HandleDashboard renders every panel. Panels fail independently.
func (h *handler) HandleDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	resp := dashboardResponse{Notes: h.notesView()}

	var g errgroup.Group
	g.Go(func() error {
		snap, err := h.remote.Snapshot(ctx)
		if err != nil {
			h.logger.Warn("dashboard: remote data unavailable", "error", err)
			resp.Users = failed[[]remote.User]("Error loading users")
			resp.Analytics = failed[analyticsResponse]("Error loading analytics.")
			return nil
		}
		resp.Users = panel[[]remote.User]{Data: snap.Users}
		stats := analytics.Compute(snap.Users, snap.Posts, snap.Todos, h.todos.Load(ctx))
		resp.Analytics = panel[analyticsResponse]{Data: newAnalyticsResponse(stats)}
		return nil
	})
	g.Go(func() error {
		report, err := h.weather.Current(ctx, h.defaultCity)
		if err != nil {
			h.logger.Warn("dashboard: weather unavailable", "error", err)
			resp.Weather = failed[remote.Report](weatherError(err).Message)
			return nil
		}
		resp.Weather = panel[remote.Report]{Data: report}
		return nil
	})
	_ = g.Wait()

	c.JSON(http.StatusOK, resp)
}
