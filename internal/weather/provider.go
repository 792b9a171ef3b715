package weather

import (
	"context"
	"encoding/json"
)

// Provider abstracts the mandatory current-conditions and short-range forecast source
// (e.g. OpenWeatherMap).
type Provider interface {
	Name() string
	// Configured reports a missing credential without doing any I/O.
	Configured() error
	Current(ctx context.Context, lat, lon float64) (json.RawMessage, error)
	Forecast(ctx context.Context, lat, lon float64) (json.RawMessage, error)
}

// AlertProvider returns active severe-weather alerts for a point.
type AlertProvider interface {
	Name() string
	Alerts(ctx context.Context, lat, lon float64) ([]json.RawMessage, error)
}

// ExtendedProvider returns a daily forecast series (e.g. Open-Meteo).
type ExtendedProvider interface {
	Name() string
	Extended(ctx context.Context, lat, lon float64, days int) (json.RawMessage, error)
}
