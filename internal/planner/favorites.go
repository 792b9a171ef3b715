package planner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/umahmood/haversine"
)

// duplicateRadiusKm is how close two favorites may be before they count as the same place.
const duplicateRadiusKm = 1.0

var ErrDuplicateFavorite = errors.New("a favorite for that location already exists")

// SaveFavorite stores a bookmarked location unless one already exists within 1 km.
func (s *Service) SaveFavorite(ctx context.Context, in FavoriteInput) (Favorite, error) {
	in, err := validateFavorite(in)
	if err != nil {
		return Favorite{}, err
	}

	s.favMu.Lock()
	defer s.favMu.Unlock()

	existing, err := s.store.ListFavorites(ctx)
	if err != nil {
		return Favorite{}, err
	}

	point := haversine.Coord{Lat: *in.Latitude, Lon: *in.Longitude}
	for _, fav := range existing {
		_, km := haversine.Distance(point, haversine.Coord{Lat: fav.Latitude, Lon: fav.Longitude})
		if km < duplicateRadiusKm {
			return Favorite{}, ErrDuplicateFavorite
		}
	}

	fav := Favorite{
		ID:            uuid.New(),
		Label:         in.Label,
		LocationInput: in.LocationInput,
		City:          in.City,
		Country:       in.Country,
		Latitude:      *in.Latitude,
		Longitude:     *in.Longitude,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.SaveFavorite(ctx, fav); err != nil {
		return Favorite{}, err
	}
	return fav, nil
}

// ListFavorites returns favorites newest first.
func (s *Service) ListFavorites(ctx context.Context) ([]Favorite, error) {
	return s.store.ListFavorites(ctx)
}

func (s *Service) DeleteFavorite(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteFavorite(ctx, id)
}
