package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-trip-planner/internal/common"
	"github.com/i474232898/weather-trip-planner/internal/logger"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	OpenMeteoBaseURL      string
	OpenMeteoGeocodingURL string

	SerpAPIKey     string
	SerpAPIBaseURL string

	YouTubeAPIKey  string
	YouTubeBaseURL string

	// DatabaseURL selects the PostgreSQL store; empty means in-memory.
	DatabaseURL string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often upcoming trips get fresh weather.
	RefreshInterval time.Duration

	Port     string
	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
// A .env file, when present, is loaded first; real environment variables win.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY"))
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")
	cfg.OpenMeteoBaseURL = getenvDefault("OPEN_METEO_BASE_URL", "https://api.open-meteo.com")
	cfg.OpenMeteoGeocodingURL = getenvDefault("OPEN_METEO_GEOCODING_URL", "https://geocoding-api.open-meteo.com")
	cfg.SerpAPIKey = strings.TrimSpace(os.Getenv("SERPAPI_API_KEY"))
	cfg.SerpAPIBaseURL = getenvDefault("SERPAPI_BASE_URL", "https://serpapi.com")
	cfg.YouTubeAPIKey = strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY"))
	cfg.YouTubeBaseURL = getenvDefault("YOUTUBE_BASE_URL", "https://www.googleapis.com")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := time.ParseDuration(getenvDefault("REFRESH_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports missing required credentials.
func (c *AppConfig) Validate() error {
	if c.OpenWeatherAPIKey == "" {
		return fmt.Errorf("%w: OPENWEATHER_API_KEY is not set", common.ErrConfiguration)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_TIMEOUT must be positive", common.ErrConfiguration)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
