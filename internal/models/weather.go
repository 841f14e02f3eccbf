package models

// CurrentConditions represents an instantaneous weather observation
type CurrentConditions struct {
	Temperature   float64 // Celsius
	WindSpeed     float64 // km/h
	WindDirection float64 // degrees
	Time          string  // ISO 8601, local to the queried location
}

// HourlySeries holds index-aligned hourly forecast values. The three
// slices always have the same length after Truncate.
type HourlySeries struct {
	Time        []string
	Temperature []float64 // Celsius
	Humidity    []float64 // percent relative humidity
}

// Len returns the number of hourly points.
func (h *HourlySeries) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Time)
}

// Truncate limits the series to its first n points. Before cutting it
// clips all three slices to the shortest one, so a ragged upstream
// payload cannot leave the columns misaligned.
func (h *HourlySeries) Truncate(n int) {
	if h == nil {
		return
	}

	shortest := len(h.Time)
	if len(h.Temperature) < shortest {
		shortest = len(h.Temperature)
	}
	if len(h.Humidity) < shortest {
		shortest = len(h.Humidity)
	}
	if n > shortest {
		n = shortest
	}
	if n < 0 {
		n = 0
	}

	h.Time = h.Time[:n]
	h.Temperature = h.Temperature[:n]
	h.Humidity = h.Humidity[:n]
}

// WeatherSnapshot is the result of one forecast fetch. Either part may
// be nil when the upstream omits it.
type WeatherSnapshot struct {
	Current *CurrentConditions
	Hourly  *HourlySeries
}
