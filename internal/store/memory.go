package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-trip-planner/internal/planner"
)

var (
	// ErrNotFound is returned when no trip or favorite exists for an id.
	ErrNotFound = errors.New("not found")
)

// MemoryStore is a concurrency-safe in-memory implementation of planner.Store.
type MemoryStore struct {
	mu sync.RWMutex

	trips     map[uuid.UUID]planner.Trip
	favorites map[uuid.UUID]planner.Favorite
}

var _ planner.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trips:     make(map[uuid.UUID]planner.Trip),
		favorites: make(map[uuid.UUID]planner.Favorite),
	}
}

// SaveTrip inserts or replaces a trip.
func (s *MemoryStore) SaveTrip(_ context.Context, trip planner.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trips[trip.ID] = cloneTrip(trip)
	return nil
}

func (s *MemoryStore) GetTrip(_ context.Context, id uuid.UUID) (planner.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trip, ok := s.trips[id]
	if !ok {
		return planner.Trip{}, ErrNotFound
	}
	return cloneTrip(trip), nil
}

// ListTrips returns all trips ordered by start date, then creation time.
func (s *MemoryStore) ListTrips(_ context.Context) ([]planner.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]planner.Trip, 0, len(s.trips))
	for _, trip := range s.trips {
		result = append(result, cloneTrip(trip))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.Before(result[j].StartDate)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) DeleteTrip(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[id]; !ok {
		return ErrNotFound
	}
	delete(s.trips, id)
	return nil
}

func (s *MemoryStore) SaveFavorite(_ context.Context, fav planner.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites[fav.ID] = fav
	return nil
}

// ListFavorites returns favorites newest first.
func (s *MemoryStore) ListFavorites(_ context.Context) ([]planner.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]planner.Favorite, 0, len(s.favorites))
	for _, fav := range s.favorites {
		result = append(result, fav)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) DeleteFavorite(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favorites[id]; !ok {
		return ErrNotFound
	}
	delete(s.favorites, id)
	return nil
}

// cloneTrip copies the weather snapshot so callers cannot mutate stored state.
func cloneTrip(trip planner.Trip) planner.Trip {
	if trip.Weather != nil {
		w := *trip.Weather
		w.Raw = append([]byte(nil), trip.Weather.Raw...)
		trip.Weather = &w
	}
	return trip
}
