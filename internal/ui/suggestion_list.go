package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/wxterm/cityweather/internal/models"
)

// suggestionItem wraps a City for use in the suggestion list
type suggestionItem struct {
	city models.City
}

// FilterValue implements list.Item
func (s suggestionItem) FilterValue() string {
	return s.city.Name
}

// Title implements list.DefaultItem
func (s suggestionItem) Title() string {
	return s.city.Label()
}

// Description implements list.DefaultItem
func (s suggestionItem) Description() string {
	return fmt.Sprintf("%.4f, %.4f", s.city.Latitude, s.city.Longitude)
}

// createSuggestionList creates a list.Model from search results
func createSuggestionList(cities []models.City, width, height int) list.Model {
	items := make([]list.Item, len(cities))
	for i, city := range cities {
		items[i] = suggestionItem{city: city}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Search Results"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	return l
}
