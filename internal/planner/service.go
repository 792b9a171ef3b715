package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-trip-planner/internal/common"
	"github.com/i474232898/weather-trip-planner/internal/location"
	"github.com/i474232898/weather-trip-planner/internal/travel"
	"github.com/i474232898/weather-trip-planner/internal/weather"
)

// CurrentLocationLabel names a lookup made from a browser-supplied position.
const CurrentLocationLabel = "Current Location"

// Resolver geocodes a classified query.
type Resolver interface {
	Resolve(ctx context.Context, classified location.Classified, raw string) (location.Resolved, error)
}

// WeatherFetcher returns the raw weather bundle for a point.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, lat, lon float64) (weather.RawBundle, error)
}

type Suggester interface {
	Suggest(ctx context.Context, query string) ([]location.Suggestion, error)
}

// Store persists trips and favorites. Missing ids yield an error
// the HTTP layer maps to 404.
type Store interface {
	SaveTrip(ctx context.Context, trip Trip) error
	GetTrip(ctx context.Context, id uuid.UUID) (Trip, error)
	ListTrips(ctx context.Context) ([]Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error
	SaveFavorite(ctx context.Context, fav Favorite) error
	ListFavorites(ctx context.Context) ([]Favorite, error)
	DeleteFavorite(ctx context.Context, id uuid.UUID) error
}

// Service coordinates geocoding, weather, persistence and travel content.
type Service struct {
	store     Store
	resolver  Resolver
	fetcher   WeatherFetcher
	suggester Suggester
	hotels    travel.HotelSource
	videos    travel.VideoSource
	guides    travel.GuideSource
	now       func() time.Time

	// favMu serializes the favorite duplicate check with its insert.
	favMu sync.Mutex
}

type Option func(*Service)

func WithSuggester(s Suggester) Option {
	return func(svc *Service) { svc.suggester = s }
}

// WithTravel enables hotel, video and guide lookups. Nil sources stay disabled.
func WithTravel(hotels travel.HotelSource, videos travel.VideoSource, guides travel.GuideSource) Option {
	return func(svc *Service) {
		svc.hotels = hotels
		svc.videos = videos
		svc.guides = guides
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// NewService creates a new Service.
func NewService(store Store, resolver Resolver, fetcher WeatherFetcher, opts ...Option) *Service {
	svc := &Service{
		store:    store,
		resolver: resolver,
		fetcher:  fetcher,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Lookup runs the search pipeline: classify, resolve, fetch, summarize and normalize.
func (s *Service) Lookup(ctx context.Context, query string) (Report, error) {
	query = strings.TrimSpace(query)
	classified := location.Classify(query)
	if classified == nil {
		return Report{}, invalid("Location is required")
	}

	resolved, err := s.resolver.Resolve(ctx, *classified, query)
	if err != nil {
		return Report{}, err
	}

	bundle, err := s.fetcher.FetchWeather(ctx, resolved.Lat, resolved.Lon)
	if err != nil {
		return Report{}, err
	}
	return buildReport(query, *classified, resolved, bundle), nil
}

// LookupPoint fetches weather for a known position, skipping geocoding.
func (s *Service) LookupPoint(ctx context.Context, lat, lon float64, label string) (Report, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Report{}, invalid("Valid coordinates are required.")
	}

	p := location.Point{Lat: lat, Lon: lon}
	resolved := location.Resolved{
		Lat:           lat,
		Lon:           lon,
		Label:         common.FirstNonEmpty(strings.TrimSpace(label), CurrentLocationLabel),
		InterpretedAs: string(location.KindCoordinates),
	}

	bundle, err := s.fetcher.FetchWeather(ctx, lat, lon)
	if err != nil {
		return Report{}, err
	}
	classified := location.Classified{Kind: location.KindCoordinates, Coordinates: &p}
	return buildReport(location.FormatPoint(p), classified, resolved, bundle), nil
}

// Suggest returns autocomplete candidates; without a suggester it returns none.
func (s *Service) Suggest(ctx context.Context, query string) ([]location.Suggestion, error) {
	if s.suggester == nil {
		return []location.Suggestion{}, nil
	}
	return s.suggester.Suggest(ctx, query)
}

func buildReport(query string, classified location.Classified, resolved location.Resolved, bundle weather.RawBundle) Report {
	alerts := bundle.Alerts
	if alerts == nil {
		alerts = []json.RawMessage{}
	}
	return Report{
		Query:          query,
		Classification: classified,
		Interpretation: classified.Interpretation(),
		Location:       resolved,
		Summary:        weather.Summarize(bundle),
		Forecast:       weather.NormalizeForecast(bundle.Forecast, weather.ShortRangeDays),
		Extended:       weather.NormalizeExtended(bundle.Extended, weather.ExtendedDays),
		Alerts:         alerts,
		Weather:        bundle,
	}
}

func (s *Service) Hotels(ctx context.Context, query, checkIn, checkOut string) ([]travel.Hotel, error) {
	if s.hotels == nil {
		return nil, fmt.Errorf("%w: hotel search is not configured", common.ErrConfiguration)
	}
	query, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	checkIn, checkOut, err = s.stayDates(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return s.hotels.Hotels(ctx, query, checkIn, checkOut)
}

// stayDates defaults check-in to today and check-out to the day after check-in.
func (s *Service) stayDates(checkIn, checkOut string) (string, string, error) {
	const layout = "2006-01-02"

	in := s.now().UTC().Truncate(24 * time.Hour)
	if v := strings.TrimSpace(checkIn); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return "", "", invalid("Invalid check-in date")
		}
		in = t
	}

	out := in.AddDate(0, 0, 1)
	if v := strings.TrimSpace(checkOut); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return "", "", invalid("Invalid check-out date")
		}
		out = t
	}
	if !out.After(in) {
		return "", "", invalid("Check-out date must be after check-in date")
	}
	return in.Format(layout), out.Format(layout), nil
}

func (s *Service) Videos(ctx context.Context, query string) ([]travel.Video, error) {
	if s.videos == nil {
		return nil, fmt.Errorf("%w: video search is not configured", common.ErrConfiguration)
	}
	query, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	return s.videos.Videos(ctx, query)
}

func (s *Service) Itinerary(ctx context.Context, query string) ([]travel.ItineraryIdea, error) {
	if s.guides == nil {
		return nil, fmt.Errorf("%w: itinerary search is not configured", common.ErrConfiguration)
	}
	query, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	return s.guides.Itinerary(ctx, query)
}

func (s *Service) Photo(ctx context.Context, query string) (*travel.Photo, error) {
	if s.guides == nil {
		return nil, fmt.Errorf("%w: photo search is not configured", common.ErrConfiguration)
	}
	query, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	return s.guides.Photo(ctx, query)
}

func requireQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", invalid("Query is required")
	}
	return query, nil
}
