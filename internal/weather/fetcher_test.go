package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/tj/assert"

	"github.com/i474232898/weather-trip-planner/internal/common"
)

var errTest = errors.New("test error")

type fakeProvider struct {
	configErr   error
	currentErr  error
	forecastErr error
	currentBody json.RawMessage
	calls       int32
}

func (p *fakeProvider) Name() string      { return "fake" }
func (p *fakeProvider) Configured() error { return p.configErr }

func (p *fakeProvider) Current(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.currentErr != nil {
		return nil, p.currentErr
	}
	if p.currentBody != nil {
		return p.currentBody, nil
	}
	return json.RawMessage(fmt.Sprintf(`{"coord":{"lat":%g,"lon":%g},"main":{"temp":15}}`, lat, lon)), nil
}

func (p *fakeProvider) Forecast(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.forecastErr != nil {
		return nil, p.forecastErr
	}
	return json.RawMessage(`{"list":[{"dt_txt":"2024-01-01 00:00:00","main":{"temp":10}}]}`), nil
}

type fakeAlerts struct {
	err   error
	calls int32
}

func (a *fakeAlerts) Name() string { return "fake-alerts" }

func (a *fakeAlerts) Alerts(ctx context.Context, lat, lon float64) ([]json.RawMessage, error) {
	atomic.AddInt32(&a.calls, 1)
	if a.err != nil {
		return nil, a.err
	}
	return []json.RawMessage{json.RawMessage(`{"event":"Wind"}`)}, nil
}

type fakeExtended struct {
	err      error
	body     json.RawMessage
	calls    int32
	canceled int32
}

func (e *fakeExtended) Name() string { return "fake-extended" }

func (e *fakeExtended) Extended(ctx context.Context, lat, lon float64, days int) (json.RawMessage, error) {
	atomic.AddInt32(&e.calls, 1)
	if ctx.Err() != nil {
		atomic.AddInt32(&e.canceled, 1)
	}
	if e.err != nil {
		return nil, e.err
	}
	if e.body != nil {
		return e.body, nil
	}
	return json.RawMessage(fmt.Sprintf(`{"daily":{"time":[]},"days":%d}`, days)), nil
}

func TestFetchWeatherAllSucceed(t *testing.T) {
	f := NewFetcher(&fakeProvider{}, &fakeAlerts{}, &fakeExtended{})

	bundle, err := f.FetchWeather(context.Background(), 1.5, 2.5)
	assert.NoError(t, err)
	assert.Contains(t, string(bundle.Current), `"lat":1.5`)
	assert.Contains(t, string(bundle.Forecast), `"list"`)
	assert.Len(t, bundle.Alerts, 1)
	assert.Contains(t, string(bundle.Extended), `"days":14`)
}

func TestFetchWeatherAuxiliaryFailuresDegrade(t *testing.T) {
	f := NewFetcher(&fakeProvider{}, &fakeAlerts{err: errTest}, &fakeExtended{err: errTest})

	bundle, err := f.FetchWeather(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.NotNil(t, bundle.Alerts)
	assert.Len(t, bundle.Alerts, 0)
	assert.Nil(t, bundle.Extended)

	raw, err := json.Marshal(bundle)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"alerts":[]`)
	assert.Contains(t, string(raw), `"extended":null`)
}

func TestFetchWeatherMandatoryFailure(t *testing.T) {
	cases := []struct {
		name     string
		provider *fakeProvider
	}{
		{"current fails", &fakeProvider{currentErr: errTest}},
		{"forecast fails", &fakeProvider{forecastErr: errTest}},
		{"both fail", &fakeProvider{currentErr: errTest, forecastErr: errTest}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFetcher(tc.provider, &fakeAlerts{}, nil).FetchWeather(context.Background(), 1, 2)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrWeatherFetch))
		})
	}
}

func TestFetchWeatherMissingCredentialMakesNoCalls(t *testing.T) {
	provider := &fakeProvider{configErr: fmt.Errorf("%w: key missing", common.ErrConfiguration)}
	alerts := &fakeAlerts{}
	extended := &fakeExtended{}

	_, err := NewFetcher(provider, alerts, extended).FetchWeather(context.Background(), 1, 2)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	assert.Equal(t, int32(0), atomic.LoadInt32(&provider.calls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&alerts.calls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&extended.calls))
}

func TestFetchWeatherWithoutProvider(t *testing.T) {
	_, err := NewFetcher(nil, nil, nil).FetchWeather(context.Background(), 1, 2)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
}

func TestFetchWeatherMandatoryFailureLetsOthersFinish(t *testing.T) {
	alerts := &fakeAlerts{}
	extended := &fakeExtended{}

	_, err := NewFetcher(&fakeProvider{currentErr: errTest}, alerts, extended).FetchWeather(context.Background(), 1, 2)
	assert.True(t, errors.Is(err, common.ErrWeatherFetch))
	assert.Equal(t, int32(1), atomic.LoadInt32(&alerts.calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&extended.calls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&extended.canceled))
}

func TestFetchWeatherNonJSONBodies(t *testing.T) {
	html := json.RawMessage(`<html>Bad Gateway</html>`)

	_, err := NewFetcher(&fakeProvider{currentBody: html}, nil, nil).FetchWeather(context.Background(), 1, 2)
	assert.True(t, errors.Is(err, common.ErrWeatherFetch))
	assert.Contains(t, err.Error(), "not valid JSON")

	bundle, err := NewFetcher(&fakeProvider{}, &fakeAlerts{}, &fakeExtended{body: html}).FetchWeather(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Nil(t, bundle.Extended)

	raw, err := json.Marshal(bundle)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"extended":null`)
}
