package location_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/tj/assert"

	"github.com/i474232898/weather-trip-planner/internal/common"
	"github.com/i474232898/weather-trip-planner/internal/location"
	mock "github.com/i474232898/weather-trip-planner/internal/location/mock"
)

var errTest = errors.New("test error")

func TestResolveCoordinates(t *testing.T) {
	ctx := context.Background()
	point := location.Point{Lat: 40.712776, Lon: -74.005974}
	classified := location.Classified{Kind: location.KindCoordinates, Coordinates: &point}

	cases := []struct {
		name        string
		places      []location.Place
		err         error
		wantLabel   string
		wantCity    bool
		wantCountry string
	}{
		{
			name:        "reverse geocode hit",
			places:      []location.Place{{Name: "New York", Country: "US"}},
			wantLabel:   "New York, US",
			wantCity:    true,
			wantCountry: "US",
		},
		{
			name:      "provider failure degrades",
			err:       errTest,
			wantLabel: "40.7128, -74.0060",
		},
		{
			name:      "empty result degrades",
			places:    []location.Place{},
			wantLabel: "40.7128, -74.0060",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			geocoder := mock.NewMockGeocoder(ctrl)
			geocoder.EXPECT().Reverse(ctx, point.Lat, point.Lon).Return(tc.places, tc.err)

			got, err := location.NewResolver(geocoder).Resolve(ctx, classified, "40.712776,-74.005974")
			assert.NoError(t, err)
			assert.Equal(t, tc.wantLabel, got.Label)
			assert.Equal(t, point.Lat, got.Lat)
			assert.Equal(t, point.Lon, got.Lon)
			assert.Equal(t, "Coordinates", got.InterpretedAs)
			if tc.wantCity {
				assert.NotNil(t, got.City)
				assert.Equal(t, tc.wantCountry, *got.Country)
			} else {
				assert.Nil(t, got.City)
				assert.Nil(t, got.Country)
			}
		})
	}
}

func TestResolveCoordinatesConfigurationErrorPropagates(t *testing.T) {
	ctx := context.Background()
	point := location.Point{Lat: 1, Lon: 2}
	ctrl := gomock.NewController(t)
	geocoder := mock.NewMockGeocoder(ctrl)
	geocoder.EXPECT().Reverse(ctx, 1.0, 2.0).Return(nil, common.ErrConfiguration)

	_, err := location.NewResolver(geocoder).Resolve(ctx, location.Classified{Kind: location.KindCoordinates, Coordinates: &point}, "1,2")
	assert.True(t, errors.Is(err, common.ErrConfiguration))
}

func TestResolvePostal(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		geocoder := mock.NewMockGeocoder(ctrl)
		geocoder.EXPECT().Postal(ctx, "10001,US").
			Return(location.Place{Name: "New York", Country: "US", Lat: 40.75, Lon: -73.99}, nil)

		got, err := location.NewResolver(geocoder).Resolve(ctx, location.Classified{Kind: location.KindPostalCode}, " 10001-1234 ")
		assert.NoError(t, err)
		assert.Equal(t, 40.75, got.Lat)
		assert.Equal(t, "New York, US", got.Label)
		assert.Equal(t, "10001-1234", got.Postal)
		assert.Equal(t, "ZIP / Postal Code", got.InterpretedAs)
	})

	t.Run("miss propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		geocoder := mock.NewMockGeocoder(ctrl)
		geocoder.EXPECT().Postal(ctx, "K1A,CA").Return(location.Place{}, errTest)

		_, err := location.NewResolver(geocoder).Resolve(ctx, location.Classified{Kind: location.KindPostalCode}, "K1A 0B1")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrResolution))
	})
}

func TestResolveSearch(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name            string
		query           string
		kind            location.Kind
		places          []location.Place
		err             error
		wantErr         bool
		wantInterpreted string
	}{
		{
			name:            "city",
			query:           "Paris",
			kind:            location.KindCity,
			places:          []location.Place{{Name: "Paris", Country: "FR", Lat: 48.85, Lon: 2.35}},
			wantInterpreted: "City / Town",
		},
		{
			name:            "landmark keyword",
			query:           "Eiffel Tower",
			kind:            location.KindLandmark,
			places:          []location.Place{{Name: "Paris", Country: "FR", Lat: 48.85, Lon: 2.29}},
			wantInterpreted: "Landmark",
		},
		{
			name:            "digits without keyword keep the city label",
			query:           "221B Baker Street",
			kind:            location.KindLandmark,
			places:          []location.Place{{Name: "London", Country: "GB"}},
			wantInterpreted: "City / Town",
		},
		{
			name:    "no matches",
			query:   "Atlantis",
			kind:    location.KindCity,
			places:  []location.Place{},
			wantErr: true,
		},
		{
			name:    "provider failure",
			query:   "Paris",
			kind:    location.KindCity,
			err:     errTest,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			geocoder := mock.NewMockGeocoder(ctrl)
			geocoder.EXPECT().Direct(ctx, tc.query).Return(tc.places, tc.err)

			got, err := location.NewResolver(geocoder).Resolve(ctx, location.Classified{Kind: tc.kind}, tc.query)
			if tc.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrResolution))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantInterpreted, got.InterpretedAs)
			assert.Equal(t, tc.places[0].Name, *got.City)
		})
	}
}

func TestPostalQuery(t *testing.T) {
	assert.Equal(t, "10001,US", location.PostalQuery("10001"))
	assert.Equal(t, "10001,US", location.PostalQuery("10001 1234"))
	assert.Equal(t, "M5V,CA", location.PostalQuery("m5v 3l9"))
}
