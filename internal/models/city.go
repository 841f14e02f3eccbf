package models

import "fmt"

// City represents a geocoded city returned by the search API.
type City struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Equal reports whether two cities are the same entry.
// Identity is the (name, latitude, longitude) triple; country is
// display-only and deliberately excluded.
func (c City) Equal(other City) bool {
	return c.Name == other.Name &&
		c.Latitude == other.Latitude &&
		c.Longitude == other.Longitude
}

// Label returns a short human-readable description of the city.
func (c City) Label() string {
	if c.Country == "" {
		return c.Name
	}
	return fmt.Sprintf("%s, %s", c.Name, c.Country)
}
