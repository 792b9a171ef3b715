package location

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var coordinateToken = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?)\s*([NSEWnsew])?$`)

// ParseCoordinates parses "lat,lon" or "lat lon", with optional compass suffixes
// ("40.7N 74W"). It reports false for anything that is not exactly two in-range values.
func ParseCoordinates(raw string) (Point, bool) {
	tokens := strings.Split(strings.TrimSpace(raw), ",")
	if len(tokens) == 1 {
		tokens = strings.Fields(tokens[0])
	}
	if len(tokens) != 2 {
		return Point{}, false
	}

	lat, ok := parseCoordinateToken(tokens[0])
	if !ok {
		return Point{}, false
	}
	lon, ok := parseCoordinateToken(tokens[1])
	if !ok {
		return Point{}, false
	}

	if math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return Point{}, false
	}
	return Point{Lat: lat, Lon: lon}, true
}

func parseCoordinateToken(token string) (float64, bool) {
	m := coordinateToken.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return 0, false
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	switch strings.ToUpper(m[2]) {
	case "":
		return v, true
	case "S", "W":
		return -math.Abs(v), true
	default:
		return math.Abs(v), true
	}
}
