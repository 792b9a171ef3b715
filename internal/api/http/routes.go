package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-trip-planner/internal/common"
	"github.com/i474232898/weather-trip-planner/internal/location"
	"github.com/i474232898/weather-trip-planner/internal/logger"
	"github.com/i474232898/weather-trip-planner/internal/planner"
	"github.com/i474232898/weather-trip-planner/internal/store"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *planner.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1.Get("/classify", func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		classified := location.Classify(q)
		if classified == nil {
			return writeError(c, &planner.ValidationError{Messages: []string{"Location is required"}})
		}
		return c.JSON(fiber.Map{
			"query":             q,
			"kind":              classified.Kind,
			"label":             classified.Kind.Label(),
			"interpretation":    classified.Interpretation(),
			"parsedCoordinates": classified.Coordinates,
		})
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		query := c.Query("query", c.Query("q"))
		report, err := service.Lookup(c.UserContext(), query)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(report)
	})

	v1.Get("/weather/point", func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
		if errLat != nil || errLon != nil {
			return writeError(c, &planner.ValidationError{Messages: []string{"Valid coordinates are required."}})
		}
		report, err := service.LookupPoint(c.UserContext(), lat, lon, c.Query("label"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(report)
	})

	v1.Get("/suggest", func(c *fiber.Ctx) error {
		suggestions, err := service.Suggest(c.UserContext(), c.Query("q"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(suggestions)
	})

	registerTripRoutes(v1, service)
	registerFavoriteRoutes(v1, service)
	registerTravelRoutes(v1, service)

	v1.Get("/export", func(c *fiber.Ctx) error {
		export, err := service.Export(c.UserContext(), c.Query("format"), c.Query("tripId"))
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, export.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
		return c.Send(export.Body)
	})
}

func registerTripRoutes(r fiber.Router, service *planner.Service) {
	r.Get("/trips", func(c *fiber.Ctx) error {
		trips, err := service.ListTrips(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(trips)
	})

	r.Post("/trips", func(c *fiber.Ctx) error {
		var in planner.TripInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		trip, err := service.CreateTrip(c.UserContext(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(trip)
	})

	r.Get("/trips/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		trip, err := service.GetTrip(c.UserContext(), id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(trip)
	})

	r.Put("/trips/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		var in planner.TripInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		trip, err := service.UpdateTrip(c.UserContext(), id, in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(trip)
	})

	r.Delete("/trips/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := service.DeleteTrip(c.UserContext(), id); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	r.Get("/trips/:id/forecast", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		forecast, err := service.TripForecast(c.UserContext(), id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(forecast)
	})
}

func registerFavoriteRoutes(r fiber.Router, service *planner.Service) {
	r.Get("/favorites", func(c *fiber.Ctx) error {
		favs, err := service.ListFavorites(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(favs)
	})

	r.Post("/favorites", func(c *fiber.Ctx) error {
		var in planner.FavoriteInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		fav, err := service.SaveFavorite(c.UserContext(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fav)
	})

	r.Delete("/favorites/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}
		if err := service.DeleteFavorite(c.UserContext(), id); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})
}

func registerTravelRoutes(r fiber.Router, service *planner.Service) {
	r.Get("/hotels", func(c *fiber.Ctx) error {
		hotels, err := service.Hotels(c.UserContext(), c.Query("q"), c.Query("start"), c.Query("end"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(hotels)
	})

	r.Get("/videos", func(c *fiber.Ctx) error {
		videos, err := service.Videos(c.UserContext(), c.Query("q"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(videos)
	})

	r.Get("/itinerary", func(c *fiber.Ctx) error {
		ideas, err := service.Itinerary(c.UserContext(), c.Query("q"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(ideas)
	})

	r.Get("/photos", func(c *fiber.Ctx) error {
		photo, err := service.Photo(c.UserContext(), c.Query("q"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"photo": photo})
	})
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	var ve *planner.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve.Messages})
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	case errors.Is(err, planner.ErrDuplicateFavorite):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, common.ErrConfiguration):
		logger.Error(err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	case errors.Is(err, common.ErrResolution):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrWeatherFetch):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		logger.Error(err)
		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
}
