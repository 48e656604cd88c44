package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/stickyboard/pkg/core"
)

// DefaultWeatherURL is the OpenWeather current-conditions API root.
const DefaultWeatherURL = "https://api.openweathermap.org/data/2.5"

var (
	// ErrMissingAPIKey is returned when no weather API key is configured.
	ErrMissingAPIKey = errors.New("missing OpenWeather API key")
	// ErrCityNotFound is returned when the provider does not know the city.
	ErrCityNotFound = errors.New("city not found")
)

// Report is the current weather for a city.
type Report struct {
	City        string  `json:"city" yaml:"city"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Humidity    int     `json:"humidity" yaml:"humidity"`
	Description string  `json:"description" yaml:"description"`
	Icon        string  `json:"icon" yaml:"icon"`
	IconURL     string  `json:"iconUrl,omitempty" yaml:"iconUrl,omitempty"`
}

type weatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Message string `json:"message"`
}

// Weather looks up current conditions by city name.
type Weather struct {
	baseURL string
	apiKey  string
	units   string
	http    *http.Client
	logger  *slog.Logger
}

// NewWeather creates a weather client. units defaults to "metric".
func NewWeather(baseURL, apiKey, units string, hc *http.Client, logger *slog.Logger) *Weather {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	if units == "" {
		units = "metric"
	}
	if hc == nil {
		hc = &http.Client{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Weather{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		units:   units,
		http:    hc,
		logger:  logger,
	}
}

// Current returns the current weather for city.
func (w *Weather) Current(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Report{}, &core.ValidationError{Field: "city", Reason: "city cannot be empty"}
	}
	if w.apiKey == "" {
		return Report{}, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", w.apiKey)
	q.Set("units", w.units)
	endpoint := w.baseURL + "/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, &core.FetchError{Resource: "weather", Err: err}
	}

	resp, err := w.http.Do(req)
	if err != nil {
		return Report{}, &core.FetchError{Resource: "weather", Err: err}
	}
	defer resp.Body.Close()

	var body weatherResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		w.logger.Debug("weather lookup failed", "city", city, "status", resp.StatusCode, "message", body.Message)
		if strings.Contains(strings.ToLower(body.Message), "not found") {
			return Report{}, fmt.Errorf("%w: %s", ErrCityNotFound, city)
		}
		return Report{}, &core.FetchError{Resource: "weather", Status: resp.StatusCode}
	}
	if decodeErr != nil {
		return Report{}, &core.FetchError{Resource: "weather", Err: fmt.Errorf("decode: %w", decodeErr)}
	}

	report := Report{
		City:        body.Name,
		Temperature: body.Main.Temp,
		Humidity:    body.Main.Humidity,
	}
	if len(body.Weather) > 0 {
		report.Description = body.Weather[0].Description
		report.Icon = body.Weather[0].Icon
		if report.Icon != "" {
			report.IconURL = "https://openweathermap.org/img/wn/" + report.Icon + "@2x.png"
		}
	}
	return report, nil
}
