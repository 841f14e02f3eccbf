package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wxterm/cityweather/internal/favorites"
	"github.com/wxterm/cityweather/internal/models"
	"github.com/wxterm/cityweather/internal/openmeteo"
	"github.com/wxterm/cityweather/internal/state"
)

// Localized user-facing error messages, one generic text per
// operation kind.
const (
	errTextSearch  = "搜索失败，请重试"
	errTextWeather = "天气获取失败，请重试"
)

// focusArea represents which control currently receives keys
type focusArea int

const (
	focusSearch focusArea = iota
	focusSuggestions
	focusFavorites
)

// Options wires the model's dependencies.
type Options struct {
	Geocoder   openmeteo.GeocodingClient
	Forecaster openmeteo.ForecastClient
	Store      *state.Store
	Logger     *zap.Logger

	DebounceDelay time.Duration
	FavoritesCap  int

	// InitialCity, when non-empty, resolves and loads a city right at
	// startup and takes precedence over the restored last-viewed city.
	InitialCity string
}

// Model represents the application's state
type Model struct {
	width  int
	height int
	focus  focusArea

	// Controls
	searchInput    textinput.Model
	spinner        spinner.Model
	suggestionList list.Model
	favoritesList  list.Model

	// Data
	suggestions []models.City
	favs        []models.City
	selected    *models.City
	pending     *models.City // city of the in-flight weather fetch
	weather     *models.WeatherSnapshot
	errText     string

	// Loading states
	loadingSuggestions bool
	loadingWeather     bool

	// Request bookkeeping. Generations invalidate stale results,
	// cancel funcs preempt in-flight requests.
	debounceGen   int
	searchGen     int
	weatherGen    int
	cancelSearch  context.CancelFunc
	cancelWeather context.CancelFunc

	// Dependencies
	geocoder   openmeteo.GeocodingClient
	forecaster openmeteo.ForecastClient
	store      *state.Store
	log        *zap.Logger

	debounceDelay time.Duration
	favoritesCap  int
	initialCity   string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "输入城市名称搜索 (e.g. 上海, Paris)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = 300 * time.Millisecond
	}
	if opts.FavoritesCap <= 0 {
		opts.FavoritesCap = favorites.DefaultCap
	}

	return Model{
		focus:          focusSearch,
		searchInput:    ti,
		spinner:        s,
		suggestionList: createSuggestionList(nil, 60, 12),
		favoritesList:  createFavoritesList(nil, 60, 12),
		geocoder:       opts.Geocoder,
		forecaster:     opts.Forecaster,
		store:          opts.Store,
		log:            opts.Logger,
		debounceDelay:  opts.DebounceDelay,
		favoritesCap:   opts.FavoritesCap,
		initialCity:    opts.InitialCity,
		loadingWeather: opts.InitialCity != "",
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, restoreState(m.store)}

	if m.initialCity != "" {
		cmds = append(cmds,
			m.spinner.Tick,
			resolveAndFetch(context.Background(), m.geocoder, m.forecaster, m.weatherGen, m.initialCity),
		)
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.suggestionList.SetSize(msg.Width-4, listHeight(msg.Height))
		m.favoritesList.SetSize(msg.Width-4, listHeight(msg.Height))
		return m, nil

	case spinner.TickMsg:
		if !m.loadingSuggestions && !m.loadingWeather {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateRestoredMsg:
		m.favs = msg.favorites
		m.favoritesList = createFavoritesList(m.favs, m.listWidth(), listHeight(m.height))
		// The --city flag wins over the restored last-viewed city.
		if msg.lastCity != nil && m.initialCity == "" {
			return m.startWeatherFetch(*msg.lastCity)
		}
		return m, nil

	case debounceTickMsg:
		// A newer keystroke re-armed the timer; this tick is stale.
		if msg.gen != m.debounceGen {
			return m, nil
		}
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m.clearSuggestions(), nil
		}
		return m.startSearch(query)

	case suggestionsMsg:
		if msg.gen != m.searchGen {
			m.log.Debug("dropping stale suggestion result", zap.Int("gen", msg.gen))
			return m, nil
		}
		m.loadingSuggestions = false
		if msg.err != nil {
			if openmeteo.IsCancellation(msg.err) {
				return m, nil
			}
			m.log.Debug("city search failed", zap.Error(msg.err))
			m.errText = errTextSearch
			return m, nil
		}
		m.suggestions = msg.cities
		m.suggestionList = createSuggestionList(m.suggestions, m.listWidth(), listHeight(m.height))
		return m, nil

	case weatherMsg:
		if msg.gen != m.weatherGen {
			m.log.Debug("dropping stale weather result", zap.Int("gen", msg.gen))
			return m, nil
		}
		m.loadingWeather = false
		m.pending = nil
		if msg.err != nil {
			if openmeteo.IsCancellation(msg.err) {
				return m, nil
			}
			m.log.Debug("weather fetch failed", zap.Error(msg.err))
			m.weather = nil
			m.errText = errTextWeather
			return m, nil
		}
		city := msg.city
		m.selected = &city
		m.weather = msg.snapshot
		return m, persistLastCity(m.store, city, m.log)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}

	return m, nil
}

// handleKey routes keyboard input by focus area
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys. Plain 'q' stays typeable in the search box.
	if msg.String() == "ctrl+c" || (msg.String() == "q" && m.focus != focusSearch) {
		return m.teardown(), tea.Quit
	}

	if msg.Type == tea.KeyTab {
		m.focus = m.nextFocus()
		if m.focus == focusSearch {
			m.searchInput.Focus()
		} else {
			m.searchInput.Blur()
		}
		return m, nil
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusSuggestions:
		return m.handleSuggestionsKey(msg)
	case focusFavorites:
		return m.handleFavoritesKey(msg)
	}

	return m, nil
}

// handleSearchKey handles keyboard input while the search box has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Enter forces an immediate re-query, skipping the debounce.
	if msg.Type == tea.KeyEnter {
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m.clearSuggestions(), nil
		}
		m.debounceGen++ // disarm any pending tick
		return m.startSearch(query)
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if m.searchInput.Value() == before {
		// Cursor movement only; nothing to debounce.
		return m, cmd
	}

	m.errText = ""
	m.debounceGen++

	if strings.TrimSpace(m.searchInput.Value()) == "" {
		return m.clearSuggestions(), cmd
	}

	return m, tea.Batch(cmd, debounceTick(m.debounceDelay, m.debounceGen))
}

// handleSuggestionsKey handles keyboard input in the suggestion list
func (m Model) handleSuggestionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if item, ok := m.suggestionList.SelectedItem().(suggestionItem); ok {
			return m.startWeatherFetch(item.city)
		}
		return m, nil
	}
	if msg.String() == "f" {
		return m.toggleFavorite()
	}
	if msg.String() == "r" {
		return m.refetchWeather()
	}
	if msg.Type == tea.KeyEsc {
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.suggestionList, cmd = m.suggestionList.Update(msg)
	return m, cmd
}

// handleFavoritesKey handles keyboard input in the favorites list
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if item, ok := m.favoritesList.SelectedItem().(favoriteItem); ok {
			return m.startWeatherFetch(item.city)
		}
		return m, nil
	}
	if msg.String() == "f" {
		return m.toggleFavorite()
	}
	if msg.String() == "r" {
		return m.refetchWeather()
	}
	if msg.Type == tea.KeyEsc {
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.favoritesList, cmd = m.favoritesList.Update(msg)
	return m, cmd
}

// startSearch cancels any in-flight suggestion request and issues a
// new one for query.
func (m Model) startSearch(query string) (Model, tea.Cmd) {
	if m.cancelSearch != nil {
		m.cancelSearch()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelSearch = cancel

	m.searchGen++
	m.loadingSuggestions = true
	m.errText = ""

	return m, tea.Batch(
		m.spinner.Tick,
		searchCities(ctx, m.geocoder, m.searchGen, query),
	)
}

// startWeatherFetch cancels any in-flight forecast request and issues
// a new one for city.
func (m Model) startWeatherFetch(city models.City) (Model, tea.Cmd) {
	if m.cancelWeather != nil {
		m.cancelWeather()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelWeather = cancel

	m.weatherGen++
	m.loadingWeather = true
	m.errText = ""
	c := city
	m.pending = &c

	return m, tea.Batch(
		m.spinner.Tick,
		fetchWeather(ctx, m.forecaster, m.weatherGen, city),
	)
}

// refetchWeather re-queries the currently viewed city.
func (m Model) refetchWeather() (Model, tea.Cmd) {
	if m.selected == nil {
		return m, nil
	}
	return m.startWeatherFetch(*m.selected)
}

// toggleFavorite flips membership of the viewed city and persists the
// new list. The in-memory list is updated even if the write fails.
func (m Model) toggleFavorite() (Model, tea.Cmd) {
	if m.selected == nil {
		return m, nil
	}

	m.favs = favorites.Toggle(m.favs, *m.selected, m.favoritesCap)
	m.favoritesList = createFavoritesList(m.favs, m.listWidth(), listHeight(m.height))

	return m, persistFavorites(m.store, m.favs, m.log)
}

// clearSuggestions empties the suggestion list and aborts any pending
// suggestion request.
func (m Model) clearSuggestions() Model {
	if m.cancelSearch != nil {
		m.cancelSearch()
		m.cancelSearch = nil
	}
	m.searchGen++ // orphan any result already in flight
	m.suggestions = nil
	m.loadingSuggestions = false
	m.suggestionList = createSuggestionList(nil, m.listWidth(), listHeight(m.height))
	return m
}

// teardown cancels outstanding requests before the program exits.
func (m Model) teardown() Model {
	if m.cancelSearch != nil {
		m.cancelSearch()
	}
	if m.cancelWeather != nil {
		m.cancelWeather()
	}
	return m
}

// nextFocus cycles focus through the panes that currently exist.
func (m Model) nextFocus() focusArea {
	order := []focusArea{focusSearch}
	if len(m.suggestions) > 0 {
		order = append(order, focusSuggestions)
	}
	if len(m.favs) > 0 {
		order = append(order, focusFavorites)
	}

	for i, f := range order {
		if f == m.focus {
			return order[(i+1)%len(order)]
		}
	}
	return focusSearch
}

func (m Model) listWidth() int {
	if m.width == 0 {
		return 60
	}
	return m.width - 4
}

func listHeight(total int) int {
	h := total / 3
	if h < 8 {
		h = 8
	}
	return h
}
