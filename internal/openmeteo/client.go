package openmeteo

import (
	"context"
	"errors"

	"github.com/wxterm/cityweather/internal/models"
)

// GeocodingClient defines the interface for city name search
type GeocodingClient interface {
	// SearchCities returns cities matching the free-text query,
	// best match first.
	SearchCities(ctx context.Context, query string) ([]models.City, error)
}

// ForecastClient defines the interface for fetching weather data
type ForecastClient interface {
	// GetForecast retrieves current conditions and the hourly series
	// for a coordinate pair.
	GetForecast(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error)
}

// IsCancellation reports whether err came from a superseded request.
// The http client wraps context errors, so unwrap with errors.Is.
// Timeouts are real failures and are not treated as cancellation.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
