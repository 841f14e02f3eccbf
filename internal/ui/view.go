package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections,
		titleStyle.Render("☀ City Weather"),
		mutedStyle.Render("城市天气查询"),
		"",
		m.viewSearchBox(),
	)

	if m.errText != "" {
		sections = append(sections, errorStyle.Render("✗ "+m.errText))
	}

	if m.loadingSuggestions {
		sections = append(sections, fmt.Sprintf("%s 搜索中...", m.spinner.View()))
	} else if len(m.suggestions) > 0 {
		sections = append(sections, "", m.suggestionList.View())
	}

	if m.loadingWeather {
		sections = append(sections, "", fmt.Sprintf("%s 获取天气中...", m.spinner.View()))
	} else if pane := m.renderWeatherPane(); pane != "" {
		sections = append(sections, "", pane)
	}

	if len(m.favs) > 0 {
		sections = append(sections, "", m.favoritesList.View())
	}

	sections = append(sections, m.viewHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewSearchBox renders the search input with a focus hint
func (m Model) viewSearchBox() string {
	box := searchBoxStyle
	if m.focus == focusSearch {
		box = box.BorderForeground(colorPrimary)
	}
	return box.Render(m.searchInput.View())
}

// viewHelp renders the context-sensitive key legend
func (m Model) viewHelp() string {
	switch m.focus {
	case focusSuggestions:
		return helpStyle.Render("↑/↓: Navigate • Enter: View weather • F: Toggle favorite • R: Refresh • Esc: Search • Q: Quit")
	case focusFavorites:
		return helpStyle.Render("↑/↓: Navigate • Enter: View weather • F: Toggle favorite • R: Refresh • Esc: Search • Q: Quit")
	default:
		return helpStyle.Render("Type to search • Enter: Search now • Tab: Switch panes • Ctrl+C: Quit")
	}
}
