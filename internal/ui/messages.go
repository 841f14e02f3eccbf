package ui

import "github.com/wxterm/cityweather/internal/models"

// Message types for async operations. Each result message carries the
// generation its request was issued under; results whose generation no
// longer matches the model's are stale and get dropped.

// debounceTickMsg fires when the search debounce timer elapses
type debounceTickMsg struct {
	gen int
}

// suggestionsMsg is sent when a city search has finished
type suggestionsMsg struct {
	gen    int
	cities []models.City
	err    error
}

// weatherMsg is sent when a forecast fetch has finished
type weatherMsg struct {
	gen      int
	city     models.City
	snapshot *models.WeatherSnapshot
	err      error
}

// stateRestoredMsg is sent once at startup with whatever the store had
type stateRestoredMsg struct {
	favorites []models.City
	lastCity  *models.City
}
