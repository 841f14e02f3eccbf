package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wxterm/cityweather/internal/models"
)

// OpenMeteoGeocoder implements GeocodingClient using the Open-Meteo
// geocoding API.
type OpenMeteoGeocoder struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	language   string
	count      int
}

// GeocoderOption configures an OpenMeteoGeocoder.
type GeocoderOption func(*OpenMeteoGeocoder)

// WithGeocoderBaseURL overrides the API host, mainly for tests.
func WithGeocoderBaseURL(u string) GeocoderOption {
	return func(g *OpenMeteoGeocoder) { g.baseURL = u }
}

// WithLanguage sets the language of returned place names.
func WithLanguage(lang string) GeocoderOption {
	return func(g *OpenMeteoGeocoder) { g.language = lang }
}

// WithSuggestionCount sets how many results to request.
func WithSuggestionCount(n int) GeocoderOption {
	return func(g *OpenMeteoGeocoder) { g.count = n }
}

// WithGeocoderTimeout sets the HTTP client timeout.
func WithGeocoderTimeout(d time.Duration) GeocoderOption {
	return func(g *OpenMeteoGeocoder) { g.httpClient.Timeout = d }
}

// NewGeocoder creates a new Open-Meteo geocoding client
func NewGeocoder(opts ...GeocoderOption) *OpenMeteoGeocoder {
	g := &OpenMeteoGeocoder{
		baseURL: "https://geocoding-api.open-meteo.com",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent: "cityweather/1.0 (github.com/wxterm/cityweather)",
		language:  "zh",
		count:     6,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// geocodingResponse represents the Open-Meteo geocoding API response
type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// SearchCities searches for cities matching the query
func (g *OpenMeteoGeocoder) SearchCities(ctx context.Context, query string) ([]models.City, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(g.count))
	params.Set("language", g.language)
	params.Set("format", "json")

	reqURL := fmt.Sprintf("%s/v1/search?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoding API returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// A missing results field means no matches, not a failure.
	cities := make([]models.City, 0, len(payload.Results))
	for _, r := range payload.Results {
		cities = append(cities, models.City{
			Name:      r.Name,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}

	return cities, nil
}
