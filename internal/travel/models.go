package travel

import "context"

// Hotel is a lodging offer near the destination.
type Hotel struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Link          string   `json:"link,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Reviews       *int64   `json:"reviews,omitempty"`
	PricePerNight string   `json:"pricePerNight,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
}

type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	URL          string `json:"url"`
}

// ItineraryIdea is a web result suggesting how to spend a few days at the destination.
type ItineraryIdea struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
}

type Photo struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Source    string `json:"source,omitempty"`
}

// HotelSource finds hotels for a stay. Dates are YYYY-MM-DD.
type HotelSource interface {
	Hotels(ctx context.Context, query, checkIn, checkOut string) ([]Hotel, error)
}

type VideoSource interface {
	Videos(ctx context.Context, query string) ([]Video, error)
}

type GuideSource interface {
	Itinerary(ctx context.Context, query string) ([]ItineraryIdea, error)
	Photo(ctx context.Context, query string) (*Photo, error)
}
