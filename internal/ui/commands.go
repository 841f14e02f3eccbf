package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/wxterm/cityweather/internal/models"
	"github.com/wxterm/cityweather/internal/openmeteo"
	"github.com/wxterm/cityweather/internal/state"
)

// errNoMatch is returned when a direct city lookup finds nothing.
var errNoMatch = errors.New("no matching city")

// debounceTick arms the search debounce timer for one generation.
func debounceTick(delay time.Duration, gen int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceTickMsg{gen: gen}
	})
}

// searchCities runs a suggestion query against the geocoding API.
func searchCities(ctx context.Context, client openmeteo.GeocodingClient, gen int, query string) tea.Cmd {
	return func() tea.Msg {
		cities, err := client.SearchCities(ctx, query)
		return suggestionsMsg{gen: gen, cities: cities, err: err}
	}
}

// fetchWeather runs a forecast fetch for one city.
func fetchWeather(ctx context.Context, client openmeteo.ForecastClient, gen int, city models.City) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := client.GetForecast(ctx, city.Latitude, city.Longitude)
		return weatherMsg{gen: gen, city: city, snapshot: snapshot, err: err}
	}
}

// resolveAndFetch geocodes a city name, takes the first hit and
// fetches its forecast. Used by the --city flag path.
func resolveAndFetch(ctx context.Context, geocoder openmeteo.GeocodingClient, forecaster openmeteo.ForecastClient, gen int, name string) tea.Cmd {
	return func() tea.Msg {
		cities, err := geocoder.SearchCities(ctx, name)
		if err != nil {
			return weatherMsg{gen: gen, err: err}
		}
		if len(cities) == 0 {
			return weatherMsg{gen: gen, err: errNoMatch}
		}
		city := cities[0]
		snapshot, err := forecaster.GetForecast(ctx, city.Latitude, city.Longitude)
		return weatherMsg{gen: gen, city: city, snapshot: snapshot, err: err}
	}
}

// restoreState loads persisted favorites and the last-viewed city.
// The store swallows corruption itself, so this cannot fail.
func restoreState(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return stateRestoredMsg{}
		}
		return stateRestoredMsg{
			favorites: store.LoadFavorites(),
			lastCity:  store.LoadLastCity(),
		}
	}
}

// persistLastCity writes the last-viewed city. Failures degrade to
// non-persistent behavior, so they are logged and dropped.
func persistLastCity(store *state.Store, city models.City, log *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		if err := store.SaveLastCity(city); err != nil && log != nil {
			log.Debug("persisting last city failed", zap.Error(err))
		}
		return nil
	}
}

// persistFavorites writes the favorites list, same failure policy as
// persistLastCity.
func persistFavorites(store *state.Store, cities []models.City, log *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		if err := store.SaveFavorites(cities); err != nil && log != nil {
			log.Debug("persisting favorites failed", zap.Error(err))
		}
		return nil
	}
}
