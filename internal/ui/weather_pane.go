package ui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/zsefvlol/timezonemapper"

	"github.com/wxterm/cityweather/internal/favorites"
)

const (
	hourColumnKey     = "hour"
	tempColumnKey     = "temp"
	humidityColumnKey = "humidity"
)

// renderWeatherPane renders current conditions and the hourly
// breakdown for the viewed city.
func (m Model) renderWeatherPane() string {
	if m.selected == nil || m.weather == nil {
		return ""
	}

	var sections []string

	mark := "☆"
	if favorites.Contains(m.favs, *m.selected) {
		mark = favoriteMarkStyle.Render("★")
	}
	tz := timezonemapper.LatLngToTimezoneString(m.selected.Latitude, m.selected.Longitude)
	header := titleStyle.Render(fmt.Sprintf("%s %s", mark, m.selected.Label()))
	coords := mutedStyle.Render(fmt.Sprintf("%.4f, %.4f · %s", m.selected.Latitude, m.selected.Longitude, tz))
	sections = append(sections, header, coords)

	if cur := m.renderCurrentConditions(); cur != "" {
		sections = append(sections, sectionHeaderStyle.Render("当前天气"), cur)
	}

	if hourly := m.renderHourly(); hourly != "" {
		sections = append(sections, sectionHeaderStyle.Render("未来24小时"), hourly)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCurrentConditions renders the instantaneous observation block
func (m Model) renderCurrentConditions() string {
	cur := m.weather.Current
	if cur == nil {
		return ""
	}

	rows := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("气温:"), valueStyle.Render(fmt.Sprintf("%.1f°C", cur.Temperature))),
		fmt.Sprintf("%s %s", labelStyle.Render("风速:"), valueStyle.Render(fmt.Sprintf("%.1f km/h", cur.WindSpeed))),
		fmt.Sprintf("%s %s", labelStyle.Render("风向:"), valueStyle.Render(fmt.Sprintf("%.0f° %s", cur.WindDirection, compassPoint(cur.WindDirection)))),
		fmt.Sprintf("%s %s", labelStyle.Render("时间:"), valueStyle.Render(formatHour(cur.Time))),
	}

	return sectionBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderHourly renders the hourly table and a temperature sparkline
func (m Model) renderHourly() string {
	hourly := m.weather.Hourly
	if hourly.Len() == 0 {
		return ""
	}

	columns := []table.Column{
		table.NewColumn(hourColumnKey, "时间", 14),
		table.NewColumn(tempColumnKey, "气温", 10),
		table.NewColumn(humidityColumnKey, "湿度", 10),
	}

	rows := make([]table.Row, 0, hourly.Len())
	for i := 0; i < hourly.Len(); i++ {
		rows = append(rows, table.NewRow(table.RowData{
			hourColumnKey:     formatHour(hourly.Time[i]),
			tempColumnKey:     fmt.Sprintf("%.1f°C", hourly.Temperature[i]),
			humidityColumnKey: fmt.Sprintf("%.0f%%", hourly.Humidity[i]),
		}))
	}

	t := table.New(columns).WithRows(rows)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderSparkline(), t.View())
}

// renderSparkline draws the hourly temperature curve
func (m Model) renderSparkline() string {
	hourly := m.weather.Hourly
	if hourly.Len() == 0 {
		return ""
	}

	width := hourly.Len()
	if m.width > 0 && width > m.width-8 {
		width = m.width - 8
	}
	if width < 1 {
		width = 1
	}

	sl := sparkline.New(width, 4)
	for _, v := range hourly.Temperature {
		sl.Push(v)
	}
	sl.Draw()

	return mutedStyle.Render("气温趋势") + "\n" + sl.View()
}

// formatHour trims an ISO timestamp down to "MM-DD HH:MM"
func formatHour(iso string) string {
	if len(iso) >= 16 {
		return strings.Replace(iso[5:16], "T", " ", 1)
	}
	return iso
}

// compassPoint maps wind direction degrees to a compass label
func compassPoint(deg float64) string {
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int((deg+22.5)/45.0) % len(points)
	if idx < 0 {
		idx += len(points)
	}
	return points[idx]
}
