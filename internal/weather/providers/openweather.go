package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/i474232898/weather-trip-planner/internal/common"
	"github.com/i474232898/weather-trip-planner/internal/location"
	"github.com/i474232898/weather-trip-planner/internal/weather"
)

// OpenWeatherProvider talks to OpenWeatherMap: geocoding, current conditions,
// the 5-day/3-hour forecast and One Call alerts.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client

	// Separate breakers keep geocoding and alert outages from blocking weather.
	geoCircuit     *gobreaker.CircuitBreaker
	weatherCircuit *gobreaker.CircuitBreaker
	alertCircuit   *gobreaker.CircuitBreaker
}

var (
	_ weather.Provider      = (*OpenWeatherProvider)(nil)
	_ weather.AlertProvider = (*OpenWeatherProvider)(nil)
	_ location.Geocoder     = (*OpenWeatherProvider)(nil)
)

func NewOpenWeatherProvider(client *http.Client, baseURL, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,

		geoCircuit:     newCircuitBreaker("openweather-geocoding"),
		weatherCircuit: newCircuitBreaker("openweather-weather"),
		alertCircuit:   newCircuitBreaker("openweather-alerts"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Configured fails when the API key is missing.
func (p *OpenWeatherProvider) Configured() error {
	return requireKey("openweather", "OPENWEATHER_API_KEY", p.apiKey)
}

func (p *OpenWeatherProvider) Current(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	return p.fetch(ctx, p.weatherCircuit, "/data/2.5/weather", pointParams(lat, lon, "units", "metric"), "unable to load current weather")
}

func (p *OpenWeatherProvider) Forecast(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	return p.fetch(ctx, p.weatherCircuit, "/data/2.5/forecast", pointParams(lat, lon, "units", "metric"), "unable to load forecast")
}

// Alerts returns the "alerts" array of the One Call API; no alerts is an empty slice.
func (p *OpenWeatherProvider) Alerts(ctx context.Context, lat, lon float64) ([]json.RawMessage, error) {
	body, err := p.fetch(ctx, p.alertCircuit, "/data/3.0/onecall", pointParams(lat, lon, "exclude", "current,minutely,hourly,daily"), "unable to load alerts")
	if err != nil {
		return nil, err
	}

	alerts := []json.RawMessage{}
	if list := gjson.GetBytes(body, "alerts"); list.IsArray() {
		for _, a := range list.Array() {
			alerts = append(alerts, json.RawMessage(a.Raw))
		}
	}
	return alerts, nil
}

func (p *OpenWeatherProvider) Direct(ctx context.Context, query string) ([]location.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	body, err := p.fetch(ctx, p.geoCircuit, "/geo/1.0/direct", params, "unable to resolve that location")
	if err != nil {
		return nil, err
	}
	return parsePlaces(body), nil
}

func (p *OpenWeatherProvider) Postal(ctx context.Context, code string) (location.Place, error) {
	params := url.Values{}
	params.Set("zip", code)

	body, err := p.fetch(ctx, p.geoCircuit, "/geo/1.0/zip", params, "unable to resolve that postal code")
	if err != nil {
		return location.Place{}, err
	}

	place, ok := parsePlace(gjson.ParseBytes(body))
	if !ok {
		return location.Place{}, fmt.Errorf("%w: no match for postal code %s", common.ErrResolution, code)
	}
	return place, nil
}

func (p *OpenWeatherProvider) Reverse(ctx context.Context, lat, lon float64) ([]location.Place, error) {
	body, err := p.fetch(ctx, p.geoCircuit, "/geo/1.0/reverse", pointParams(lat, lon, "limit", "1"), "unable to reverse geocode")
	if err != nil {
		return nil, err
	}
	return parsePlaces(body), nil
}

func (p *OpenWeatherProvider) fetch(ctx context.Context, cb *gobreaker.CircuitBreaker, path string, params url.Values, failure string) (json.RawMessage, error) {
	if err := p.Configured(); err != nil {
		return nil, err
	}
	params.Set("appid", p.apiKey)

	body, err := getJSON(ctx, p.client, cb, joinURL(p.baseURL, path), params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	return body, nil
}

func pointParams(lat, lon float64, extra ...string) url.Values {
	params := url.Values{}
	params.Set("lat", formatFloat(lat))
	params.Set("lon", formatFloat(lon))
	for i := 0; i+1 < len(extra); i += 2 {
		params.Set(extra[i], extra[i+1])
	}
	return params
}

func parsePlaces(body []byte) []location.Place {
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil
	}
	places := make([]location.Place, 0, 1)
	for _, item := range doc.Array() {
		if place, ok := parsePlace(item); ok {
			places = append(places, place)
		}
	}
	return places
}

// parsePlace requires numeric lat/lon; every other field is optional.
func parsePlace(item gjson.Result) (location.Place, bool) {
	lat, lon := item.Get("lat"), item.Get("lon")
	if lat.Type != gjson.Number || lon.Type != gjson.Number {
		return location.Place{}, false
	}
	return location.Place{
		Name:    item.Get("name").String(),
		State:   item.Get("state").String(),
		Country: item.Get("country").String(),
		Postal:  item.Get("zip").String(),
		Lat:     lat.Float(),
		Lon:     lon.Float(),
	}, true
}
