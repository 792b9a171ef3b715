package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/i474232898/weather-trip-planner/internal/travel"
)

const itineraryLimit = 3

// SerpAPIProvider proxies Google search engines through SerpApi.
type SerpAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

var (
	_ travel.HotelSource = (*SerpAPIProvider)(nil)
	_ travel.GuideSource = (*SerpAPIProvider)(nil)
)

func NewSerpAPIProvider(client *http.Client, baseURL, apiKey string) *SerpAPIProvider {
	return &SerpAPIProvider{
		name:    "serpapi",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("serpapi"),
	}
}

func (p *SerpAPIProvider) Name() string {
	return p.name
}

func (p *SerpAPIProvider) Hotels(ctx context.Context, query, checkIn, checkOut string) ([]travel.Hotel, error) {
	values := url.Values{}
	values.Set("engine", "google_hotels")
	values.Set("q", query)
	values.Set("check_in_date", checkIn)
	values.Set("check_out_date", checkOut)
	values.Set("currency", "USD")
	values.Set("hl", "en")

	body, err := p.search(ctx, values, "unable to load hotels")
	if err != nil {
		return nil, err
	}

	hotels := []travel.Hotel{}
	for _, item := range gjson.GetBytes(body, "properties").Array() {
		name := item.Get("name").String()
		if name == "" {
			continue
		}
		hotel := travel.Hotel{
			Name:          name,
			Description:   item.Get("description").String(),
			Link:          item.Get("link").String(),
			PricePerNight: item.Get("rate_per_night.lowest").String(),
			Thumbnail:     item.Get("images.0.thumbnail").String(),
		}
		if r := item.Get("overall_rating"); r.Type == gjson.Number {
			v := r.Float()
			hotel.Rating = &v
		}
		if r := item.Get("reviews"); r.Type == gjson.Number {
			v := r.Int()
			hotel.Reviews = &v
		}
		hotels = append(hotels, hotel)
	}
	return hotels, nil
}

func (p *SerpAPIProvider) Itinerary(ctx context.Context, query string) ([]travel.ItineraryIdea, error) {
	values := url.Values{}
	values.Set("engine", "google")
	values.Set("q", query+" 3 day itinerary")

	body, err := p.search(ctx, values, "unable to load itinerary ideas")
	if err != nil {
		return nil, err
	}

	ideas := []travel.ItineraryIdea{}
	for _, item := range gjson.GetBytes(body, "organic_results").Array() {
		if len(ideas) == itineraryLimit {
			break
		}
		title, link := item.Get("title").String(), item.Get("link").String()
		if title == "" || link == "" {
			continue
		}
		ideas = append(ideas, travel.ItineraryIdea{
			Title:   title,
			Link:    link,
			Snippet: item.Get("snippet").String(),
		})
	}
	return ideas, nil
}

// Photo returns the first image result, or nil when there is none.
func (p *SerpAPIProvider) Photo(ctx context.Context, query string) (*travel.Photo, error) {
	values := url.Values{}
	values.Set("engine", "google")
	values.Set("tbm", "isch")
	values.Set("q", query)

	body, err := p.search(ctx, values, "unable to load photo")
	if err != nil {
		return nil, err
	}

	first := gjson.GetBytes(body, "images_results.0")
	original := first.Get("original").String()
	if original == "" {
		return nil, nil
	}
	return &travel.Photo{
		URL:       original,
		Thumbnail: first.Get("thumbnail").String(),
		Source:    first.Get("source").String(),
	}, nil
}

func (p *SerpAPIProvider) search(ctx context.Context, values url.Values, failure string) ([]byte, error) {
	if err := requireKey("serpapi", "SERPAPI_API_KEY", p.apiKey); err != nil {
		return nil, err
	}
	values.Set("api_key", p.apiKey)

	body, err := getJSON(ctx, p.client, p.circuit, joinURL(p.baseURL, "/search.json"), values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	return body, nil
}
