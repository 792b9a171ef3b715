package location

//go:generate mockgen -source=resolver.go -destination=mock/mock_geocoder.go -package=mock

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/i474232898/weather-trip-planner/internal/common"
	"github.com/i474232898/weather-trip-planner/internal/logger"
)

// Geocoder is the upstream geocoding provider.
type Geocoder interface {
	// Direct performs a forward search and returns at most one best match.
	Direct(ctx context.Context, query string) ([]Place, error)
	// Postal looks up a postal code formatted as "<code>,<country>".
	Postal(ctx context.Context, code string) (Place, error)
	// Reverse returns places at the given point, best first.
	Reverse(ctx context.Context, lat, lon float64) ([]Place, error)
}

// Resolver turns a classified query into a canonical location.
type Resolver struct {
	geocoder Geocoder
}

// NewResolver creates a new Resolver.
func NewResolver(geocoder Geocoder) *Resolver {
	return &Resolver{geocoder: geocoder}
}

// Resolve geocodes the query according to its classification.
// Coordinates never fail on provider errors; they fall back to a numeric label.
func (r *Resolver) Resolve(ctx context.Context, classified Classified, raw string) (Resolved, error) {
	query := strings.TrimSpace(raw)

	switch classified.Kind {
	case KindCoordinates:
		if classified.Coordinates == nil {
			p, ok := ParseCoordinates(query)
			if !ok {
				return Resolved{}, fmt.Errorf("%w: invalid coordinates %q", common.ErrResolution, query)
			}
			classified.Coordinates = &p
		}
		return r.resolveCoordinates(ctx, *classified.Coordinates)
	case KindPostalCode:
		return r.resolvePostal(ctx, query)
	default:
		return r.resolveSearch(ctx, query)
	}
}

func (r *Resolver) resolveCoordinates(ctx context.Context, p Point) (Resolved, error) {
	fallback := Resolved{
		Lat:           p.Lat,
		Lon:           p.Lon,
		Label:         FormatPoint(p),
		InterpretedAs: string(KindCoordinates),
	}

	places, err := r.geocoder.Reverse(ctx, p.Lat, p.Lon)
	if err != nil {
		if errors.Is(err, common.ErrConfiguration) {
			return Resolved{}, err
		}
		logger.WithFields(logger.Fields{"lat": p.Lat, "lon": p.Lon}).
			Warnf("reverse geocode failed, using coordinate label: %v", err)
		return fallback, nil
	}
	if len(places) == 0 {
		return fallback, nil
	}

	place := places[0]
	return Resolved{
		Lat:           p.Lat,
		Lon:           p.Lon,
		City:          optional(place.Name),
		Country:       optional(place.Country),
		Label:         common.FirstNonEmpty(placeLabel(place), fallback.Label),
		InterpretedAs: string(KindCoordinates),
	}, nil
}

func (r *Resolver) resolvePostal(ctx context.Context, code string) (Resolved, error) {
	place, err := r.geocoder.Postal(ctx, PostalQuery(code))
	if err != nil {
		return Resolved{}, resolutionError(err)
	}

	return Resolved{
		Lat:           place.Lat,
		Lon:           place.Lon,
		City:          optional(place.Name),
		Country:       optional(place.Country),
		Label:         common.FirstNonEmpty(placeLabel(place), code),
		Postal:        strings.ToUpper(code),
		InterpretedAs: string(KindPostalCode),
	}, nil
}

func (r *Resolver) resolveSearch(ctx context.Context, query string) (Resolved, error) {
	places, err := r.geocoder.Direct(ctx, query)
	if err != nil {
		return Resolved{}, resolutionError(err)
	}
	if len(places) == 0 {
		return Resolved{}, fmt.Errorf("%w: No matching locations found", common.ErrResolution)
	}

	place := places[0]
	interpreted := KindCity
	if HasLandmarkKeyword(query) {
		interpreted = KindLandmark
	}

	return Resolved{
		Lat:           place.Lat,
		Lon:           place.Lon,
		City:          optional(place.Name),
		Country:       optional(place.Country),
		Label:         common.FirstNonEmpty(placeLabel(place), query),
		Postal:        place.Postal,
		InterpretedAs: string(interpreted),
	}, nil
}

var canadianPostal = regexp.MustCompile(`(?i)^[A-Z]\d[A-Z]`)

// PostalQuery formats a postal code for the provider's "<code>,<country>" lookup.
// US ZIP+4 is reduced to the 5-digit ZIP; Canadian codes to their forward sortation area.
func PostalQuery(code string) string {
	code = strings.TrimSpace(code)
	if canadianPostal.MatchString(code) {
		return strings.ToUpper(code[:3]) + ",CA"
	}
	if len(code) >= 5 {
		return code[:5] + ",US"
	}
	return code
}

// FormatPoint renders a point as "lat, lon" rounded to 4 decimals.
func FormatPoint(p Point) string {
	return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lon)
}

func placeLabel(p Place) string {
	parts := make([]string, 0, 2)
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	if p.Country != "" {
		parts = append(parts, p.Country)
	}
	return strings.Join(parts, ", ")
}

func resolutionError(err error) error {
	if errors.Is(err, common.ErrConfiguration) || errors.Is(err, common.ErrResolution) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrResolution, err)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
