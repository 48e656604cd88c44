package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickyboard/pkg/analytics"
)

const noData = "No data"

type analyticsResponse struct {
	Stats   *analytics.Stats `json:"stats"`
	Message string           `json:"message,omitempty"`
}

func newAnalyticsResponse(stats *analytics.Stats) analyticsResponse {
	if stats == nil {
		return analyticsResponse{Message: noData}
	}
	return analyticsResponse{Stats: stats}
}

func (h *handler) HandleAnalytics(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.remote.Snapshot(ctx)
	if err != nil {
		h.logger.Warn("failed to load analytics", "error", err)
		abort(c, newAPIError(http.StatusBadGateway, "Error loading analytics."))
		return
	}
	stats := analytics.Compute(snap.Users, snap.Posts, snap.Todos, h.todos.Load(ctx))
	c.JSON(http.StatusOK, newAnalyticsResponse(stats))
}

// HandleAnalyticsStream mounts an analytics view for the lifetime of the
// connection and pushes a "stats" event on every override change.
func (h *handler) HandleAnalyticsStream(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.remote.Snapshot(ctx)
	if err != nil {
		h.logger.Warn("failed to load analytics", "error", err)
		abort(c, newAPIError(http.StatusBadGateway, "Error loading analytics."))
		return
	}

	updates := make(chan *analytics.Stats, 1)
	view := analytics.NewView(snap, h.logger)
	view.OnChange(func(s *analytics.Stats) {
		// Keep only the latest stats if the client is slow.
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- s:
		default:
		}
	})
	view.Mount(ctx, h.hub, h.todos)
	defer view.Unmount()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("stats", newAnalyticsResponse(view.Stats()))
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-updates:
			c.SSEvent("stats", newAnalyticsResponse(s))
			c.Writer.Flush()
		}
	}
}
