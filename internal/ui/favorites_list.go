package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/wxterm/cityweather/internal/models"
)

// favoriteItem wraps a City for use in the favorites list
type favoriteItem struct {
	city models.City
}

// FilterValue implements list.Item
func (f favoriteItem) FilterValue() string {
	return f.city.Name
}

// Title implements list.DefaultItem
func (f favoriteItem) Title() string {
	return "★ " + f.city.Label()
}

// Description implements list.DefaultItem
func (f favoriteItem) Description() string {
	return fmt.Sprintf("%.4f, %.4f", f.city.Latitude, f.city.Longitude)
}

// createFavoritesList creates a list.Model from the favorites
func createFavoritesList(cities []models.City, width, height int) list.Model {
	items := make([]list.Item, len(cities))
	for i, city := range cities {
		items[i] = favoriteItem{city: city}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Favorites"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	return l
}
