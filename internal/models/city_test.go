package models

import "testing"

func TestCity_Equal(t *testing.T) {
	paris := City{Name: "Paris", Country: "France", Latitude: 48.85, Longitude: 2.35}

	tests := []struct {
		name  string
		other City
		want  bool
	}{
		{
			name:  "same triple same country",
			other: City{Name: "Paris", Country: "France", Latitude: 48.85, Longitude: 2.35},
			want:  true,
		},
		{
			name:  "country ignored",
			other: City{Name: "Paris", Country: "", Latitude: 48.85, Longitude: 2.35},
			want:  true,
		},
		{
			name:  "different name",
			other: City{Name: "Pari", Country: "France", Latitude: 48.85, Longitude: 2.35},
			want:  false,
		},
		{
			name:  "different latitude",
			other: City{Name: "Paris", Country: "France", Latitude: 48.86, Longitude: 2.35},
			want:  false,
		},
		{
			name:  "different longitude",
			other: City{Name: "Paris", Country: "France", Latitude: 48.85, Longitude: 2.36},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paris.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCity_Label(t *testing.T) {
	withCountry := City{Name: "Shanghai", Country: "China"}
	if withCountry.Label() != "Shanghai, China" {
		t.Errorf("Label() = %q, want %q", withCountry.Label(), "Shanghai, China")
	}

	noCountry := City{Name: "Springfield"}
	if noCountry.Label() != "Springfield" {
		t.Errorf("Label() = %q, want %q", noCountry.Label(), "Springfield")
	}
}
