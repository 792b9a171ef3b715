package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-trip-planner/internal/common"
	"github.com/i474232898/weather-trip-planner/internal/logger"
)

var errMalformed = errors.New("response is not valid JSON")

// Fetcher fans out to the weather providers for a single point and joins the results.
type Fetcher struct {
	primary  Provider
	alerts   AlertProvider
	extended ExtendedProvider
}

// NewFetcher creates a new Fetcher. alerts and extended may be nil.
func NewFetcher(primary Provider, alerts AlertProvider, extended ExtendedProvider) *Fetcher {
	return &Fetcher{
		primary:  primary,
		alerts:   alerts,
		extended: extended,
	}
}

// FetchWeather issues the current, forecast, alerts and extended calls concurrently
// and waits for all of them. Current and forecast are mandatory: if either fails or
// is not JSON, the fetch fails. Alerts and extended failures are logged and leave
// their field empty.
func (f *Fetcher) FetchWeather(ctx context.Context, lat, lon float64) (RawBundle, error) {
	if err := f.checkConfigured(); err != nil {
		return RawBundle{}, err
	}

	bundle := RawBundle{Alerts: []json.RawMessage{}}
	var g errgroup.Group

	g.Go(func() error {
		current, err := f.primary.Current(ctx, lat, lon)
		if err == nil && !gjson.ValidBytes(current) {
			err = errMalformed
		}
		if err != nil {
			return fmt.Errorf("current conditions from %s: %w", f.primary.Name(), err)
		}
		bundle.Current = current
		return nil
	})

	g.Go(func() error {
		forecast, err := f.primary.Forecast(ctx, lat, lon)
		if err == nil && !gjson.ValidBytes(forecast) {
			err = errMalformed
		}
		if err != nil {
			return fmt.Errorf("forecast from %s: %w", f.primary.Name(), err)
		}
		bundle.Forecast = forecast
		return nil
	})

	if f.alerts != nil {
		g.Go(func() error {
			alerts, err := f.alerts.Alerts(ctx, lat, lon)
			if err != nil {
				softFailure(f.alerts.Name(), "alerts", lat, lon, err)
				return nil
			}
			valid := make([]json.RawMessage, 0, len(alerts))
			for _, a := range alerts {
				if gjson.ValidBytes(a) {
					valid = append(valid, a)
				}
			}
			bundle.Alerts = valid
			return nil
		})
	}

	if f.extended != nil {
		g.Go(func() error {
			extended, err := f.extended.Extended(ctx, lat, lon, ExtendedDays)
			if err == nil && !gjson.ValidBytes(extended) {
				err = errMalformed
			}
			if err != nil {
				softFailure(f.extended.Name(), "extended forecast", lat, lon, err)
				return nil
			}
			bundle.Extended = extended
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, common.ErrConfiguration) {
			return RawBundle{}, err
		}
		return RawBundle{}, fmt.Errorf("%w: %v", common.ErrWeatherFetch, err)
	}

	return bundle, nil
}

func (f *Fetcher) checkConfigured() error {
	if f.primary == nil {
		return fmt.Errorf("%w: no weather provider configured", common.ErrConfiguration)
	}
	return f.primary.Configured()
}

func softFailure(provider, signal string, lat, lon float64, err error) {
	logger.WithFields(logger.Fields{
		"provider": provider,
		"lat":      lat,
		"lon":      lon,
	}).Warnf("%s unavailable: %v", signal, err)
}
