// Package favorites implements the membership rules for the
// user-curated city list: unique by the (name, latitude, longitude)
// triple, newest first, bounded size.
package favorites

import "github.com/wxterm/cityweather/internal/models"

// DefaultCap is the maximum number of favorites kept.
const DefaultCap = 20

// Contains reports whether city is already in the list.
func Contains(list []models.City, city models.City) bool {
	return indexOf(list, city) >= 0
}

// Toggle flips membership of city in the list. If present, exactly
// that entry is removed and the rest keep their order. If absent, the
// city is prepended and the list is truncated to cap entries. A cap
// of zero or less falls back to DefaultCap.
func Toggle(list []models.City, city models.City, cap int) []models.City {
	if cap <= 0 {
		cap = DefaultCap
	}

	if i := indexOf(list, city); i >= 0 {
		out := make([]models.City, 0, len(list)-1)
		out = append(out, list[:i]...)
		out = append(out, list[i+1:]...)
		return out
	}

	out := make([]models.City, 0, len(list)+1)
	out = append(out, city)
	out = append(out, list...)
	if len(out) > cap {
		out = out[:cap]
	}
	return out
}

func indexOf(list []models.City, city models.City) int {
	for i, c := range list {
		if c.Equal(city) {
			return i
		}
	}
	return -1
}
