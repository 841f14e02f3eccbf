package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wxterm/cityweather/internal/models"
)

// stubGeocoder returns canned search results
type stubGeocoder struct {
	cities []models.City
	err    error
	calls  int
}

func (s *stubGeocoder) SearchCities(ctx context.Context, query string) ([]models.City, error) {
	s.calls++
	return s.cities, s.err
}

// stubForecaster returns a canned snapshot and records coordinates
type stubForecaster struct {
	snapshot *models.WeatherSnapshot
	err      error
	calls    int
	lastLat  float64
	lastLon  float64
}

func (s *stubForecaster) GetForecast(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	s.calls++
	s.lastLat = lat
	s.lastLon = lon
	return s.snapshot, s.err
}

func testModel() Model {
	return NewModel(Options{
		Geocoder:   &stubGeocoder{},
		Forecaster: &stubForecaster{},
	})
}

// runCmd executes a command tree and collects the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, runCmd(sub)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m := testModel()

	if m.focus != focusSearch {
		t.Errorf("NewModel() focus = %v, want focusSearch", m.focus)
	}
	if !m.searchInput.Focused() {
		t.Error("search input should be focused initially")
	}
	if m.loadingSuggestions || m.loadingWeather {
		t.Error("no operation should be loading initially")
	}
	if m.debounceDelay <= 0 {
		t.Error("debounce delay should default to a positive value")
	}
	if m.favoritesCap != 20 {
		t.Errorf("favoritesCap = %d, want 20", m.favoritesCap)
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
}

func TestTyping_ArmsDebounce(t *testing.T) {
	m := testModel()

	genBefore := m.debounceGen
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'P'}})
	m = updated.(Model)

	if m.searchInput.Value() != "P" {
		t.Errorf("input value = %q, want P", m.searchInput.Value())
	}
	if m.debounceGen != genBefore+1 {
		t.Errorf("debounceGen = %d, want %d", m.debounceGen, genBefore+1)
	}
	if cmd == nil {
		t.Error("typing should arm a debounce timer")
	}
	if m.loadingSuggestions {
		t.Error("search must not start before the debounce elapses")
	}
}

func TestDebounce_OnlyLastKeystrokeFires(t *testing.T) {
	m := testModel()
	m = typeRunes(m, "Paris")

	// Ticks armed by the first four keystrokes are stale by now.
	for stale := m.debounceGen - 4; stale < m.debounceGen; stale++ {
		updated, cmd := m.Update(debounceTickMsg{gen: stale})
		m = updated.(Model)
		if cmd != nil {
			t.Fatalf("stale tick gen=%d produced a command", stale)
		}
		if m.loadingSuggestions {
			t.Fatalf("stale tick gen=%d started a search", stale)
		}
	}

	// The tick from the final keystroke fires exactly one search.
	updated, cmd := m.Update(debounceTickMsg{gen: m.debounceGen})
	m = updated.(Model)

	if !m.loadingSuggestions {
		t.Error("current tick should start a search")
	}
	if cmd == nil {
		t.Fatal("current tick should produce a search command")
	}

	geocoder := m.geocoder.(*stubGeocoder)
	runCmd(cmd)
	if geocoder.calls != 1 {
		t.Errorf("geocoder calls = %d, want 1", geocoder.calls)
	}
}

func TestDebounce_EmptyQueryShortCircuits(t *testing.T) {
	m := testModel()
	m = typeRunes(m, "   ")

	updated, cmd := m.Update(debounceTickMsg{gen: m.debounceGen})
	m = updated.(Model)

	if cmd != nil {
		t.Error("whitespace-only query must not produce a command")
	}
	if m.loadingSuggestions {
		t.Error("whitespace-only query must not start a search")
	}
	if len(m.suggestions) != 0 {
		t.Error("suggestions should be empty")
	}
}

func TestSuggestions_Populate(t *testing.T) {
	m := testModel()
	m.searchGen = 3
	m.loadingSuggestions = true

	cities := []models.City{
		{Name: "Paris", Country: "France", Latitude: 48.85, Longitude: 2.35},
		{Name: "Paris", Country: "United States", Latitude: 33.66, Longitude: -95.55},
	}
	updated, _ := m.Update(suggestionsMsg{gen: 3, cities: cities})
	m = updated.(Model)

	if m.loadingSuggestions {
		t.Error("loading flag should clear on result")
	}
	if len(m.suggestions) != 2 {
		t.Errorf("suggestions = %d, want 2", len(m.suggestions))
	}
}

func TestSuggestions_StaleResultDropped(t *testing.T) {
	m := testModel()
	m.searchGen = 5
	m.loadingSuggestions = true
	m.suggestions = []models.City{{Name: "Kept"}}

	stale := []models.City{{Name: "Stale"}}
	updated, _ := m.Update(suggestionsMsg{gen: 4, cities: stale})
	m = updated.(Model)

	if len(m.suggestions) != 1 || m.suggestions[0].Name != "Kept" {
		t.Errorf("stale result overwrote state: %+v", m.suggestions)
	}
	if !m.loadingSuggestions {
		t.Error("loading flag belongs to the newer request and must stay set")
	}
}

func TestSuggestions_ErrorSetsGenericMessage(t *testing.T) {
	m := testModel()
	m.searchGen = 1
	m.loadingSuggestions = true

	updated, _ := m.Update(suggestionsMsg{gen: 1, err: context.DeadlineExceeded})
	m = updated.(Model)

	if m.errText != errTextSearch {
		t.Errorf("errText = %q, want %q", m.errText, errTextSearch)
	}
	if m.loadingSuggestions {
		t.Error("loading flag should clear on error")
	}
}

func TestSuggestions_CancellationSwallowed(t *testing.T) {
	m := testModel()
	m.searchGen = 1
	m.loadingSuggestions = true

	updated, _ := m.Update(suggestionsMsg{gen: 1, err: context.Canceled})
	m = updated.(Model)

	if m.errText != "" {
		t.Errorf("cancellation surfaced as error: %q", m.errText)
	}
}

func TestWeather_SuccessSetsStateAndPersists(t *testing.T) {
	m := testModel()
	m.weatherGen = 2
	m.loadingWeather = true

	city := models.City{Name: "Tokyo", Latitude: 35.68, Longitude: 139.69}
	snapshot := &models.WeatherSnapshot{
		Current: &models.CurrentConditions{Temperature: 18},
	}
	updated, cmd := m.Update(weatherMsg{gen: 2, city: city, snapshot: snapshot})
	m = updated.(Model)

	if m.loadingWeather {
		t.Error("loading flag should clear")
	}
	if m.selected == nil || !m.selected.Equal(city) {
		t.Errorf("selected = %+v, want %+v", m.selected, city)
	}
	if m.weather != snapshot {
		t.Error("snapshot not stored")
	}
	if cmd == nil {
		t.Error("success should persist the last-viewed city")
	}
}

func TestWeather_StaleResultDropped(t *testing.T) {
	m := testModel()
	m.weatherGen = 3
	m.loadingWeather = true
	kept := &models.WeatherSnapshot{}
	m.weather = kept

	stale := &models.WeatherSnapshot{Current: &models.CurrentConditions{Temperature: 99}}
	updated, _ := m.Update(weatherMsg{gen: 2, city: models.City{Name: "Old"}, snapshot: stale})
	m = updated.(Model)

	if m.weather != kept {
		t.Error("stale weather result overwrote newer state")
	}
	if m.selected != nil {
		t.Error("stale result must not set the selected city")
	}
	if !m.loadingWeather {
		t.Error("loading flag belongs to the newer request and must stay set")
	}
}

func TestWeather_ErrorClearsDataAndSetsMessage(t *testing.T) {
	m := testModel()
	m.weatherGen = 1
	m.loadingWeather = true
	m.weather = &models.WeatherSnapshot{}

	updated, _ := m.Update(weatherMsg{gen: 1, err: context.DeadlineExceeded})
	m = updated.(Model)

	if m.errText != errTextWeather {
		t.Errorf("errText = %q, want %q", m.errText, errTextWeather)
	}
	if m.weather != nil {
		t.Error("failed fetch should clear displayed data")
	}
}

func TestWeather_CancellationSwallowed(t *testing.T) {
	m := testModel()
	m.weatherGen = 1
	m.loadingWeather = true

	updated, _ := m.Update(weatherMsg{gen: 1, err: context.Canceled})
	m = updated.(Model)

	if m.errText != "" {
		t.Errorf("cancellation surfaced as error: %q", m.errText)
	}
}

func TestErrorClearedOnNextOperation(t *testing.T) {
	m := testModel()
	m.errText = errTextWeather

	m = typeRunes(m, "a")

	if m.errText != "" {
		t.Errorf("typing should clear the error, got %q", m.errText)
	}
}

func TestRestore_TriggersWeatherFetch(t *testing.T) {
	m := testModel()

	last := models.City{Name: "Berlin", Latitude: 52.52, Longitude: 13.4}
	favs := []models.City{{Name: "Oslo", Latitude: 59.9, Longitude: 10.75}}

	updated, cmd := m.Update(stateRestoredMsg{favorites: favs, lastCity: &last})
	m = updated.(Model)

	if len(m.favs) != 1 {
		t.Errorf("favorites = %d, want 1", len(m.favs))
	}
	if !m.loadingWeather {
		t.Error("restored last city should trigger a weather fetch")
	}
	if cmd == nil {
		t.Fatal("restore with last city should produce a fetch command")
	}

	forecaster := m.forecaster.(*stubForecaster)
	runCmd(cmd)
	if forecaster.calls != 1 {
		t.Errorf("forecaster calls = %d, want 1", forecaster.calls)
	}
	if forecaster.lastLat != 52.52 || forecaster.lastLon != 13.4 {
		t.Errorf("fetch coords = %v,%v want 52.52,13.4", forecaster.lastLat, forecaster.lastLon)
	}
}

func TestRestore_NothingStored(t *testing.T) {
	m := testModel()

	updated, cmd := m.Update(stateRestoredMsg{})
	m = updated.(Model)

	if m.loadingWeather {
		t.Error("no last city, no fetch")
	}
	if cmd != nil {
		t.Error("empty restore should produce no command")
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Ctrl+C should return a quit command")
	}
}

func TestModel_QTypesInSearchBox(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)

	if m.searchInput.Value() != "q" {
		t.Errorf("input = %q, want q: plain q must stay typeable", m.searchInput.Value())
	}
}
