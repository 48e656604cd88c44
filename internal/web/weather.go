package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickyboard/pkg/remote"
)

func weatherError(err error) apiError {
	if apiErr, ok := validationError(err); ok {
		return apiErr
	}
	switch {
	case errors.Is(err, remote.ErrCityNotFound):
		return newNotFoundError("City not found")
	case errors.Is(err, remote.ErrMissingAPIKey):
		return newAPIError(http.StatusServiceUnavailable, "Missing OpenWeather API key")
	default:
		return newAPIError(http.StatusBadGateway, "Error loading weather")
	}
}

func (h *handler) HandleWeather(c *gin.Context) {
	city := c.DefaultQuery("city", h.defaultCity)
	report, err := h.weather.Current(c.Request.Context(), city)
	if err != nil {
		h.logger.Warn("weather lookup failed", "city", city, "error", err)
		abort(c, weatherError(err))
		return
	}
	c.JSON(http.StatusOK, report)
}
