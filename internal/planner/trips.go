package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-trip-planner/internal/location"
	"github.com/i474232898/weather-trip-planner/internal/logger"
	"github.com/i474232898/weather-trip-planner/internal/weather"
)

// CreateTrip validates the payload, geocodes the destination and stores the trip
// with a weather snapshot. Nothing is stored if any step fails.
func (s *Service) CreateTrip(ctx context.Context, in TripInput) (Trip, error) {
	v, err := validateTrip(in)
	if err != nil {
		return Trip{}, err
	}

	resolved, err := s.resolve(ctx, v.location)
	if err != nil {
		return Trip{}, err
	}

	snapshot, err := s.snapshot(ctx, resolved.Lat, resolved.Lon, nil)
	if err != nil {
		return Trip{}, err
	}

	now := s.now().UTC()
	trip := Trip{
		ID:            uuid.New(),
		Name:          v.name,
		LocationInput: v.location,
		StartDate:     v.start,
		EndDate:       v.end,
		Weather:       snapshot,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyLocation(&trip, resolved)

	if err := s.store.SaveTrip(ctx, trip); err != nil {
		return Trip{}, err
	}
	return trip, nil
}

func (s *Service) GetTrip(ctx context.Context, id uuid.UUID) (Trip, error) {
	return s.store.GetTrip(ctx, id)
}

// ListTrips returns all trips ordered by start date.
func (s *Service) ListTrips(ctx context.Context) ([]Trip, error) {
	return s.store.ListTrips(ctx)
}

// UpdateTrip re-geocodes only when the location text changed and refetches weather
// when the location or the dates changed.
func (s *Service) UpdateTrip(ctx context.Context, id uuid.UUID, in TripInput) (Trip, error) {
	existing, err := s.store.GetTrip(ctx, id)
	if err != nil {
		return Trip{}, err
	}

	v, err := validateTrip(in)
	if err != nil {
		return Trip{}, err
	}

	trip := existing
	trip.Name = v.name
	trip.LocationInput = v.location
	trip.StartDate = v.start
	trip.EndDate = v.end

	locationChanged := v.location != strings.TrimSpace(existing.LocationInput)
	datesChanged := !existing.StartDate.Equal(v.start) || !existing.EndDate.Equal(v.end)

	if locationChanged {
		resolved, err := s.resolve(ctx, v.location)
		if err != nil {
			return Trip{}, err
		}
		applyLocation(&trip, resolved)
	}

	if locationChanged || datesChanged {
		snapshot, err := s.snapshot(ctx, trip.Latitude, trip.Longitude, existing.Weather)
		if err != nil {
			return Trip{}, err
		}
		trip.Weather = snapshot
	}

	trip.UpdatedAt = s.now().UTC()
	if err := s.store.SaveTrip(ctx, trip); err != nil {
		return Trip{}, err
	}
	return trip, nil
}

func (s *Service) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteTrip(ctx, id)
}

// TripForecast rebuilds the forecast from the trip's stored weather and keeps only
// the days inside the trip. Trips without a usable snapshot are fetched live.
func (s *Service) TripForecast(ctx context.Context, id uuid.UUID) (TripForecast, error) {
	trip, err := s.store.GetTrip(ctx, id)
	if err != nil {
		return TripForecast{}, err
	}

	var bundle weather.RawBundle
	if trip.Weather == nil || json.Unmarshal(trip.Weather.Raw, &bundle) != nil {
		bundle, err = s.fetcher.FetchWeather(ctx, trip.Latitude, trip.Longitude)
		if err != nil {
			return TripForecast{}, err
		}
	}

	alerts := bundle.Alerts
	if alerts == nil {
		alerts = []json.RawMessage{}
	}
	return TripForecast{
		Trip:     trip,
		Forecast: weather.FilterRange(weather.NormalizeForecast(bundle.Forecast, weather.ShortRangeDays), trip.StartDate, trip.EndDate),
		Extended: weather.FilterRange(weather.NormalizeExtended(bundle.Extended, weather.ExtendedDays), trip.StartDate, trip.EndDate),
		Alerts:   alerts,
	}, nil
}

// RefreshUpcoming refetches weather for every trip that has not ended by now.
// Per-trip failures are logged and skipped; it returns how many trips were refreshed.
func (s *Service) RefreshUpcoming(ctx context.Context, now time.Time) (int, error) {
	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return 0, err
	}

	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	refreshed := 0
	for _, trip := range trips {
		if trip.EndDate.UTC().Before(today) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}

		snapshot, err := s.snapshot(ctx, trip.Latitude, trip.Longitude, trip.Weather)
		if err != nil {
			logger.WithFields(logger.Fields{"trip": trip.ID.String()}).Warnf("weather refresh failed: %v", err)
			continue
		}
		trip.Weather = snapshot
		trip.UpdatedAt = s.now().UTC()
		if err := s.store.SaveTrip(ctx, trip); err != nil {
			logger.WithFields(logger.Fields{"trip": trip.ID.String()}).Warnf("saving refreshed weather failed: %v", err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

func (s *Service) resolve(ctx context.Context, input string) (location.Resolved, error) {
	classified := location.Classify(input)
	if classified == nil {
		return location.Resolved{}, invalid("Location is required")
	}
	return s.resolver.Resolve(ctx, *classified, input)
}

// snapshot fetches and summarizes weather. Summary fields missing from the new
// bundle keep their previous values.
func (s *Service) snapshot(ctx context.Context, lat, lon float64, previous *TripWeather) (*TripWeather, error) {
	bundle, err := s.fetcher.FetchWeather(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("encoding weather bundle: %w", err)
	}

	summary := weather.Summarize(bundle)
	w := &TripWeather{
		AvgTemp:     summary.AvgTemp,
		MinTemp:     summary.MinTemp,
		MaxTemp:     summary.MaxTemp,
		SummaryText: summary.SummaryText,
		Raw:         raw,
		FetchedAt:   s.now().UTC(),
	}
	if previous != nil {
		w.AvgTemp = keep(w.AvgTemp, previous.AvgTemp)
		w.MinTemp = keep(w.MinTemp, previous.MinTemp)
		w.MaxTemp = keep(w.MaxTemp, previous.MaxTemp)
		w.SummaryText = keep(w.SummaryText, previous.SummaryText)
	}
	return w, nil
}

func applyLocation(trip *Trip, resolved location.Resolved) {
	trip.City = resolved.City
	trip.Country = resolved.Country
	trip.Latitude = resolved.Lat
	trip.Longitude = resolved.Lon
	trip.Label = resolved.Label
}

func keep[T any](next, previous *T) *T {
	if next != nil {
		return next
	}
	return previous
}
