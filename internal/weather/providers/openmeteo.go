package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/i474232898/weather-trip-planner/internal/location"
	"github.com/i474232898/weather-trip-planner/internal/weather"
)

const suggestionLimit = 10

// OpenMeteoProvider serves the extended daily forecast and place-name suggestions.
// Open-Meteo needs no credential.
type OpenMeteoProvider struct {
	name         string
	baseURL      string
	geocodingURL string
	client       *http.Client
	circuit      *gobreaker.CircuitBreaker
}

var _ weather.ExtendedProvider = (*OpenMeteoProvider)(nil)

func NewOpenMeteoProvider(client *http.Client, baseURL, geocodingURL string) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:         "openmeteo",
		baseURL:      baseURL,
		geocodingURL: geocodingURL,
		client:       client,
		circuit:      newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Extended(ctx context.Context, lat, lon float64, days int) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("latitude", formatFloat(lat))
	values.Set("longitude", formatFloat(lon))
	values.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
	values.Set("forecast_days", strconv.Itoa(days))
	values.Set("timezone", "auto")

	body, err := getJSON(ctx, p.client, p.circuit, joinURL(p.baseURL, "/v1/forecast"), values)
	if err != nil {
		return nil, fmt.Errorf("unable to load extended forecast: %w", err)
	}
	return body, nil
}

// Suggest returns autocomplete candidates for a partial place name.
// Queries shorter than two characters return no suggestions without a request.
func (p *OpenMeteoProvider) Suggest(ctx context.Context, query string) ([]location.Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return []location.Suggestion{}, nil
	}

	values := url.Values{}
	values.Set("name", query)
	values.Set("count", strconv.Itoa(suggestionLimit))
	values.Set("language", "en")
	values.Set("format", "json")

	body, err := getJSON(ctx, p.client, p.circuit, joinURL(p.geocodingURL, "/v1/search"), values)
	if err != nil {
		return nil, fmt.Errorf("unable to load suggestions: %w", err)
	}

	suggestions := []location.Suggestion{}
	for _, item := range gjson.GetBytes(body, "results").Array() {
		lat, lon := item.Get("latitude"), item.Get("longitude")
		if lat.Type != gjson.Number || lon.Type != gjson.Number {
			continue
		}

		name := item.Get("name").String()
		admin := item.Get("admin1").String()
		country := item.Get("country").String()
		parts := make([]string, 0, 3)
		for _, part := range []string{name, admin, country} {
			if part != "" {
				parts = append(parts, part)
			}
		}

		suggestions = append(suggestions, location.Suggestion{
			ID:        item.Get("id").String(),
			Label:     strings.Join(parts, ", "),
			Latitude:  lat.Float(),
			Longitude: lon.Float(),
			Country:   country,
			Admin:     admin,
			Timezone:  item.Get("timezone").String(),
		})
	}
	return suggestions, nil
}
