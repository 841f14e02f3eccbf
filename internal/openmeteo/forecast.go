package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wxterm/cityweather/internal/models"
)

// OpenMeteoForecaster implements ForecastClient using the Open-Meteo
// forecast API.
type OpenMeteoForecaster struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	hourlyHours int
}

// ForecasterOption configures an OpenMeteoForecaster.
type ForecasterOption func(*OpenMeteoForecaster)

// WithForecasterBaseURL overrides the API host, mainly for tests.
func WithForecasterBaseURL(u string) ForecasterOption {
	return func(f *OpenMeteoForecaster) { f.baseURL = u }
}

// WithHourlyHours sets how many hourly points to keep.
func WithHourlyHours(n int) ForecasterOption {
	return func(f *OpenMeteoForecaster) { f.hourlyHours = n }
}

// WithForecasterTimeout sets the HTTP client timeout.
func WithForecasterTimeout(d time.Duration) ForecasterOption {
	return func(f *OpenMeteoForecaster) { f.httpClient.Timeout = d }
}

// NewForecaster creates a new Open-Meteo forecast client
func NewForecaster(opts ...ForecasterOption) *OpenMeteoForecaster {
	f := &OpenMeteoForecaster{
		baseURL: "https://api.open-meteo.com",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent:   "cityweather/1.0 (github.com/wxterm/cityweather)",
		hourlyHours: 24,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// forecastResponse represents the Open-Meteo forecast API response
type forecastResponse struct {
	CurrentWeather *struct {
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		Time          string  `json:"time"`
	} `json:"current_weather"`
	Hourly *struct {
		Time          []string  `json:"time"`
		Temperature2m []float64 `json:"temperature_2m"`
		Humidity2m    []float64 `json:"relativehumidity_2m"`
	} `json:"hourly"`
}

// GetForecast retrieves current conditions and the hourly series for a
// coordinate pair. The hourly series is truncated to the configured
// window (fewer points if the upstream returns less).
func (f *OpenMeteoForecaster) GetForecast(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("current_weather", "true")
	params.Set("hourly", "temperature_2m,relativehumidity_2m")
	params.Set("timezone", "auto")

	reqURL := fmt.Sprintf("%s/v1/forecast?%s", f.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("forecast API returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	snapshot := &models.WeatherSnapshot{}

	if payload.CurrentWeather != nil {
		snapshot.Current = &models.CurrentConditions{
			Temperature:   payload.CurrentWeather.Temperature,
			WindSpeed:     payload.CurrentWeather.WindSpeed,
			WindDirection: payload.CurrentWeather.WindDirection,
			Time:          payload.CurrentWeather.Time,
		}
	}

	if payload.Hourly != nil {
		hourly := &models.HourlySeries{
			Time:        payload.Hourly.Time,
			Temperature: payload.Hourly.Temperature2m,
			Humidity:    payload.Hourly.Humidity2m,
		}
		hourly.Truncate(f.hourlyHours)
		snapshot.Hourly = hourly
	}

	return snapshot, nil
}
