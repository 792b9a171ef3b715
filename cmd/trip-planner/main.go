package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	httpapi "github.com/i474232898/weather-trip-planner/internal/api/http"
	"github.com/i474232898/weather-trip-planner/internal/config"
	"github.com/i474232898/weather-trip-planner/internal/location"
	"github.com/i474232898/weather-trip-planner/internal/logger"
	"github.com/i474232898/weather-trip-planner/internal/planner"
	"github.com/i474232898/weather-trip-planner/internal/scheduler"
	"github.com/i474232898/weather-trip-planner/internal/store"
	"github.com/i474232898/weather-trip-planner/internal/weather"
	"github.com/i474232898/weather-trip-planner/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to load config: %w", err))
	}
	logger.SetLevel(cfg.LogLevel)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	openWeather := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey)
	openMeteo := providers.NewOpenMeteoProvider(httpClient, cfg.OpenMeteoBaseURL, cfg.OpenMeteoGeocodingURL)
	serpAPI := providers.NewSerpAPIProvider(httpClient, cfg.SerpAPIBaseURL, cfg.SerpAPIKey)
	youTube := providers.NewYouTubeProvider(httpClient, cfg.YouTubeBaseURL, cfg.YouTubeAPIKey)

	tripStore, closeStore := openStore(cfg.DatabaseURL)
	defer closeStore()

	// Core service orchestrating geocoding, weather and persistence.
	service := planner.NewService(
		tripStore,
		location.NewResolver(openWeather),
		weather.NewFetcher(openWeather, openWeather, openMeteo),
		planner.WithSuggester(openMeteo),
		planner.WithTravel(serpAPI, youTube, serpAPI),
	)

	// Scheduler that keeps upcoming trips' weather fresh.
	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		logger.Fatal(fmt.Errorf("failed to start scheduler: %w", err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-trip-planner",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-trip-planner",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		logger.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Warnf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warnf("error during shutdown: %v", err)
	}
}

// openStore connects to PostgreSQL when a URL is configured and falls back to memory.
func openStore(databaseURL string) (planner.Store, func()) {
	if databaseURL == "" {
		logger.Info("DATABASE_URL not set; using in-memory store")
		return store.NewMemoryStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to connect to database: %w", err))
	}

	pg := store.NewPostgresStore(pool)
	if err := pg.Health(ctx); err != nil {
		pool.Close()
		logger.Fatal(err)
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		logger.Fatal(err)
	}
	logger.Info("connected to PostgreSQL")
	return pg, pool.Close
}
