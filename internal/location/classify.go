package location

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var (
	zipPattern    = regexp.MustCompile(`^\d{5}(?:[-\s]\d{4})?$`)
	postalPattern = regexp.MustCompile(`(?i)^[A-Z]\d[A-Z]\s?\d[A-Z]\d$`)
)

var landmarkKeywords = map[string]struct{}{
	"tower": {}, "park": {}, "museum": {}, "bridge": {}, "statue": {},
	"memorial": {}, "monument": {}, "campus": {}, "airport": {}, "station": {},
	"plaza": {}, "square": {}, "pier": {}, "harbor": {}, "harbour": {},
}

// Classify decides how a raw query should be geocoded. It returns nil for blank input.
// Order matters: coordinates, then postal codes, then landmarks (keyword or any digit),
// and finally city.
func Classify(raw string) *Classified {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	if p, ok := ParseCoordinates(value); ok {
		return &Classified{Kind: KindCoordinates, Coordinates: &p}
	}
	if IsPostalCode(value) {
		return &Classified{Kind: KindPostalCode}
	}
	if HasLandmarkKeyword(value) || strings.IndexFunc(value, unicode.IsDigit) >= 0 {
		return &Classified{Kind: KindLandmark}
	}
	return &Classified{Kind: KindCity}
}

// IsPostalCode matches US ZIP (+4) and Canadian postal codes.
func IsPostalCode(value string) bool {
	return zipPattern.MatchString(value) || postalPattern.MatchString(value)
}

// HasLandmarkKeyword reports whether any word of value is a landmark keyword.
func HasLandmarkKeyword(value string) bool {
	words := strings.FieldsFunc(cases.Fold().String(value), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if _, ok := landmarkKeywords[w]; ok {
			return true
		}
	}
	return false
}
