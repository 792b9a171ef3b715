package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/i474232898/weather-trip-planner/internal/planner"
)

const schema = `
CREATE TABLE IF NOT EXISTS trips (
	id             UUID PRIMARY KEY,
	trip_name      TEXT NOT NULL,
	location_input TEXT NOT NULL,
	city           TEXT,
	country        TEXT,
	latitude       DOUBLE PRECISION NOT NULL,
	longitude      DOUBLE PRECISION NOT NULL,
	label          TEXT NOT NULL DEFAULT '',
	start_date     TIMESTAMPTZ NOT NULL,
	end_date       TIMESTAMPTZ NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS trip_weather (
	trip_id      UUID PRIMARY KEY REFERENCES trips(id) ON DELETE CASCADE,
	avg_temp     DOUBLE PRECISION,
	min_temp     DOUBLE PRECISION,
	max_temp     DOUBLE PRECISION,
	summary_text TEXT,
	weather_json JSONB NOT NULL,
	fetched_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS favorites (
	id             UUID PRIMARY KEY,
	label          TEXT NOT NULL,
	location_input TEXT NOT NULL,
	city           TEXT,
	country        TEXT,
	latitude       DOUBLE PRECISION NOT NULL,
	longitude      DOUBLE PRECISION NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
`

const tripColumns = `
	t.id, t.trip_name, t.location_input, t.city, t.country, t.latitude, t.longitude, t.label,
	t.start_date, t.end_date, t.created_at, t.updated_at,
	w.avg_temp, w.min_temp, w.max_temp, w.summary_text, w.weather_json, w.fetched_at
`

// PostgresStore implements planner.Store on PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ planner.Store = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the tables if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SaveTrip upserts the trip and its weather snapshot in one transaction.
func (s *PostgresStore) SaveTrip(ctx context.Context, trip planner.Trip) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO trips (
			id, trip_name, location_input, city, country, latitude, longitude, label,
			start_date, end_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			trip_name = EXCLUDED.trip_name,
			location_input = EXCLUDED.location_input,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			label = EXCLUDED.label,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = EXCLUDED.updated_at
	`,
		trip.ID, trip.Name, trip.LocationInput, trip.City, trip.Country, trip.Latitude, trip.Longitude, trip.Label,
		trip.StartDate, trip.EndDate, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save trip: %w", err)
	}

	if w := trip.Weather; w != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO trip_weather (trip_id, avg_temp, min_temp, max_temp, summary_text, weather_json, fetched_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (trip_id) DO UPDATE SET
				avg_temp = EXCLUDED.avg_temp,
				min_temp = EXCLUDED.min_temp,
				max_temp = EXCLUDED.max_temp,
				summary_text = EXCLUDED.summary_text,
				weather_json = EXCLUDED.weather_json,
				fetched_at = EXCLUDED.fetched_at
		`, trip.ID, w.AvgTemp, w.MinTemp, w.MaxTemp, w.SummaryText, string(w.Raw), w.FetchedAt)
		if err != nil {
			return fmt.Errorf("postgres: failed to save trip weather: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit trip: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetTrip(ctx context.Context, id uuid.UUID) (planner.Trip, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+tripColumns+`
		FROM trips t LEFT JOIN trip_weather w ON w.trip_id = t.id
		WHERE t.id = $1
	`, id)

	trip, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return planner.Trip{}, ErrNotFound
	}
	if err != nil {
		return planner.Trip{}, fmt.Errorf("postgres: failed to load trip: %w", err)
	}
	return trip, nil
}

func (s *PostgresStore) ListTrips(ctx context.Context) ([]planner.Trip, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+tripColumns+`
		FROM trips t LEFT JOIN trip_weather w ON w.trip_id = t.id
		ORDER BY t.start_date ASC, t.created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query trips: %w", err)
	}
	defer rows.Close()

	results := []planner.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan trip row: %w", err)
		}
		results = append(results, trip)
	}
	return results, rows.Err()
}

func (s *PostgresStore) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveFavorite(ctx context.Context, fav planner.Favorite) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO favorites (id, label, location_input, city, country, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, fav.ID, fav.Label, fav.LocationInput, fav.City, fav.Country, fav.Latitude, fav.Longitude, fav.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to save favorite: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListFavorites(ctx context.Context) ([]planner.Favorite, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, label, location_input, city, country, latitude, longitude, created_at
		FROM favorites
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query favorites: %w", err)
	}
	defer rows.Close()

	results := []planner.Favorite{}
	for rows.Next() {
		var f planner.Favorite
		err := rows.Scan(&f.ID, &f.Label, &f.LocationInput, &f.City, &f.Country, &f.Latitude, &f.Longitude, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan favorite row: %w", err)
		}
		results = append(results, f)
	}
	return results, rows.Err()
}

func (s *PostgresStore) DeleteFavorite(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Health checks database connectivity.
func (s *PostgresStore) Health(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func scanTrip(row pgx.Row) (planner.Trip, error) {
	var (
		t         planner.Trip
		avgTemp   *float64
		minTemp   *float64
		maxTemp   *float64
		summary   *string
		raw       []byte
		fetchedAt *time.Time
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.LocationInput, &t.City, &t.Country, &t.Latitude, &t.Longitude, &t.Label,
		&t.StartDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt,
		&avgTemp, &minTemp, &maxTemp, &summary, &raw, &fetchedAt,
	)
	if err != nil {
		return planner.Trip{}, err
	}

	if fetchedAt != nil {
		t.Weather = &planner.TripWeather{
			AvgTemp:     avgTemp,
			MinTemp:     minTemp,
			MaxTemp:     maxTemp,
			SummaryText: summary,
			Raw:         json.RawMessage(raw),
			FetchedAt:   *fetchedAt,
		}
	}
	return t, nil
}
