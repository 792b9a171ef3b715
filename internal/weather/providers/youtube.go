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

// YouTubeProvider searches the YouTube Data API for destination travel vlogs.
type YouTubeProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

var _ travel.VideoSource = (*YouTubeProvider)(nil)

func NewYouTubeProvider(client *http.Client, baseURL, apiKey string) *YouTubeProvider {
	return &YouTubeProvider{
		name:    "youtube",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("youtube"),
	}
}

func (p *YouTubeProvider) Name() string {
	return p.name
}

func (p *YouTubeProvider) Videos(ctx context.Context, query string) ([]travel.Video, error) {
	if err := requireKey("youtube", "YOUTUBE_API_KEY", p.apiKey); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("part", "snippet")
	values.Set("type", "video")
	values.Set("maxResults", "3")
	values.Set("q", query+" travel vlog")
	values.Set("key", p.apiKey)

	body, err := getJSON(ctx, p.client, p.circuit, joinURL(p.baseURL, "/youtube/v3/search"), values)
	if err != nil {
		return nil, fmt.Errorf("unable to load videos: %w", err)
	}

	videos := []travel.Video{}
	for _, item := range gjson.GetBytes(body, "items").Array() {
		id := item.Get("id.videoId").String()
		if id == "" {
			continue
		}
		videos = append(videos, travel.Video{
			ID:           id,
			Title:        item.Get("snippet.title").String(),
			ChannelTitle: item.Get("snippet.channelTitle").String(),
			Thumbnail:    item.Get("snippet.thumbnails.medium.url").String(),
			URL:          "https://www.youtube.com/watch?v=" + id,
		})
	}
	return videos, nil
}
