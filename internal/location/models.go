package location

// Kind is the classification of a raw location query.
type Kind string

const (
	KindCoordinates Kind = "Coordinates"
	KindPostalCode  Kind = "ZIP / Postal Code"
	KindLandmark    Kind = "Landmark"
	KindCity        Kind = "City / Town"
)

// Label is the human-readable description of the kind shown next to a search.
func (k Kind) Label() string {
	switch k {
	case KindCoordinates:
		return "Latitude/Longitude"
	case KindPostalCode:
		return "Postal or ZIP code"
	case KindLandmark:
		return "Landmark or address"
	default:
		return "City or town"
	}
}

// Point is a WGS84 coordinate pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Classified is the result of classifying a raw query.
// Coordinates is set iff Kind is KindCoordinates.
type Classified struct {
	Kind        Kind   `json:"kind"`
	Coordinates *Point `json:"parsedCoordinates,omitempty"`
}

// Interpretation returns the "Interpreted as ..." text for the classification.
func (c Classified) Interpretation() string {
	return "Interpreted as " + c.Kind.Label()
}

// Place is a single geocoding provider match.
type Place struct {
	Name    string
	State   string
	Country string
	Postal  string
	Lat     float64
	Lon     float64
}

// Resolved is the canonical output of geocoding.
// City and Country are nil when only the coordinates are known.
type Resolved struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	City          *string `json:"city"`
	Country       *string `json:"country"`
	Label         string  `json:"label"`
	Postal        string  `json:"postal,omitempty"`
	InterpretedAs string  `json:"interpretedAs"`
}

// Suggestion is an autocomplete candidate for the search box.
type Suggestion struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
	Admin     string  `json:"admin,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
}
