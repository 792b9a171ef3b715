package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/tj/assert"

	"github.com/i474232898/weather-trip-planner/internal/common"
)

func newOpenWeatherServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Query().Get("q") == "Nowhere" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"name":"Paris","lat":48.8566,"lon":2.3522,"country":"FR","state":"Ile-de-France"}]`))
	})
	mux.HandleFunc("/geo/1.0/zip", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Query().Get("zip") != "10001,US" {
			http.Error(w, `{"cod":"404","message":"not found"}`, http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"zip":"10001","name":"New York","lat":40.7484,"lon":-73.9967,"country":"US"}`))
	})
	mux.HandleFunc("/geo/1.0/reverse", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		_, _ = w.Write([]byte(`[{"name":"Chiyoda","lat":35.68,"lon":139.76,"country":"JP"}]`))
	})
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`{"main":{"temp":12.5}}`))
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/data/3.0/onecall", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		_, _ = w.Write([]byte(`{"lat":1,"lon":2}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenWeatherMissingKeyMakesNoRequests(t *testing.T) {
	var hits int32
	srv := newOpenWeatherServer(t, &hits)
	p := NewOpenWeatherProvider(srv.Client(), srv.URL, "")
	ctx := context.Background()

	assert.True(t, errors.Is(p.Configured(), common.ErrConfiguration))

	_, err := p.Current(ctx, 1, 2)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	_, err = p.Forecast(ctx, 1, 2)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	_, err = p.Alerts(ctx, 1, 2)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	_, err = p.Direct(ctx, "Paris")
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	_, err = p.Postal(ctx, "10001,US")
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	_, err = p.Reverse(ctx, 1, 2)
	assert.True(t, errors.Is(err, common.ErrConfiguration))

	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestOpenWeatherGeocoding(t *testing.T) {
	var hits int32
	srv := newOpenWeatherServer(t, &hits)
	p := NewOpenWeatherProvider(srv.Client(), srv.URL, "test-key")
	ctx := context.Background()

	places, err := p.Direct(ctx, "Paris")
	assert.NoError(t, err)
	assert.Len(t, places, 1)
	assert.Equal(t, "Paris", places[0].Name)
	assert.Equal(t, "FR", places[0].Country)
	assert.Equal(t, 48.8566, places[0].Lat)

	places, err = p.Direct(ctx, "Nowhere")
	assert.NoError(t, err)
	assert.Empty(t, places)

	place, err := p.Postal(ctx, "10001,US")
	assert.NoError(t, err)
	assert.Equal(t, "New York", place.Name)
	assert.Equal(t, "10001", place.Postal)

	_, err = p.Postal(ctx, "99999,US")
	assert.Error(t, err)

	places, err = p.Reverse(ctx, 35.68, 139.76)
	assert.NoError(t, err)
	assert.Equal(t, "Chiyoda", places[0].Name)
}

func TestOpenWeatherWeather(t *testing.T) {
	var hits int32
	srv := newOpenWeatherServer(t, &hits)
	p := NewOpenWeatherProvider(srv.Client(), srv.URL, "test-key")
	ctx := context.Background()

	current, err := p.Current(ctx, 1, 2)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"main":{"temp":12.5}}`, string(current))

	_, err = p.Forecast(ctx, 1, 2)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errServerError))

	alerts, err := p.Alerts(ctx, 1, 2)
	assert.NoError(t, err)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestOpenWeatherClientErrorsDoNotOpenBreaker(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/zip", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/data/3.0/onecall", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401}`, http.StatusUnauthorized)
	})
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main":{"temp":12.5}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), srv.URL, "test-key")
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := p.Postal(ctx, "99999,US")
		assert.True(t, errors.Is(err, errUnexpected), "attempt %d: %v", i, err)
		_, err = p.Alerts(ctx, 1, 2)
		assert.True(t, errors.Is(err, errUnexpected), "attempt %d: %v", i, err)
	}

	assert.Equal(t, gobreaker.StateClosed, p.geoCircuit.State())
	assert.Equal(t, gobreaker.StateClosed, p.alertCircuit.State())

	_, err := p.Current(ctx, 1, 2)
	assert.NoError(t, err)
}

func TestOpenWeatherGeocodingOutageLeavesWeatherAvailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main":{"temp":12.5}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), srv.URL, "test-key")
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := p.Direct(ctx, "Paris")
		assert.True(t, errors.Is(err, errServerError), "attempt %d: %v", i, err)
	}
	_, err := p.Direct(ctx, "Paris")
	assert.True(t, errors.Is(err, errCircuitOpen))

	_, err = p.Current(ctx, 1, 2)
	assert.NoError(t, err)
}

func TestOpenWeatherRejectsNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>Bad Gateway</html>`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), srv.URL, "test-key")

	_, err := p.Current(context.Background(), 1, 2)
	assert.True(t, errors.Is(err, errInvalidBody))
}

func TestCountsAsHealthy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "success", err: nil, want: true},
		{name: "not found", err: &statusError{code: http.StatusNotFound}, want: true},
		{name: "unauthorized", err: &statusError{code: http.StatusUnauthorized}, want: true},
		{name: "rate limited", err: &statusError{code: http.StatusTooManyRequests}, want: false},
		{name: "server error", err: &statusError{code: http.StatusBadGateway}, want: false},
		{name: "invalid body", err: errInvalidBody, want: false},
		{name: "caller canceled", err: context.Canceled, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countsAsHealthy(tt.err))
		})
	}
}
