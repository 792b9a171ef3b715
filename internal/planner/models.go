package planner

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-trip-planner/internal/location"
	"github.com/i474232898/weather-trip-planner/internal/weather"
)

// Trip is a saved plan for a destination over a date range.
type Trip struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"tripName"`
	LocationInput string       `json:"locationInput"`
	City          *string      `json:"normalizedCity"`
	Country       *string      `json:"normalizedCountry"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	Label         string       `json:"label"`
	StartDate     time.Time    `json:"startDate"`
	EndDate       time.Time    `json:"endDate"`
	Weather       *TripWeather `json:"weather"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// TripWeather is the weather snapshot stored with a trip.
// Raw holds the full weather bundle so forecasts can be rebuilt later.
type TripWeather struct {
	AvgTemp     *float64        `json:"avgTemp"`
	MinTemp     *float64        `json:"minTemp"`
	MaxTemp     *float64        `json:"maxTemp"`
	SummaryText *string         `json:"summaryText"`
	Raw         json.RawMessage `json:"weatherJson"`
	FetchedAt   time.Time       `json:"fetchedAt"`
}

// Favorite is a bookmarked location.
type Favorite struct {
	ID            uuid.UUID `json:"id"`
	Label         string    `json:"label"`
	LocationInput string    `json:"locationInput"`
	City          *string   `json:"normalizedCity"`
	Country       *string   `json:"normalizedCountry"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TripInput is the create/update payload for a trip. Dates are YYYY-MM-DD or RFC3339.
type TripInput struct {
	Name          string `json:"tripName" validate:"required"`
	LocationInput string `json:"locationInput" validate:"required,min=3"`
	StartDate     string `json:"startDate" validate:"required"`
	EndDate       string `json:"endDate" validate:"required"`
}

// FavoriteInput is the payload for saving a favorite.
type FavoriteInput struct {
	Label         string   `json:"label" validate:"required"`
	LocationInput string   `json:"locationInput" validate:"required"`
	City          *string  `json:"normalizedCity"`
	Country       *string  `json:"normalizedCountry"`
	Latitude      *float64 `json:"latitude" validate:"required,latitude"`
	Longitude     *float64 `json:"longitude" validate:"required,longitude"`
}

// Report is the outcome of a weather lookup for one location.
type Report struct {
	Query          string                `json:"query"`
	Classification location.Classified   `json:"classification"`
	Interpretation string                `json:"interpretation"`
	Location       location.Resolved     `json:"location"`
	Summary        weather.Summary       `json:"summary"`
	Forecast       []weather.ForecastDay `json:"forecast"`
	Extended       []weather.ForecastDay `json:"extendedForecast"`
	Alerts         []json.RawMessage     `json:"alerts"`
	Weather        weather.RawBundle     `json:"weather"`
}

// TripForecast is the forecast for a stored trip, limited to its dates.
type TripForecast struct {
	Trip     Trip                  `json:"trip"`
	Forecast []weather.ForecastDay `json:"forecast"`
	Extended []weather.ForecastDay `json:"extendedForecast"`
	Alerts   []json.RawMessage     `json:"alerts"`
}
