package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/tj/assert"
)

func TestOpenMeteoExtended(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "14", r.URL.Query().Get("forecast_days"))
		assert.Equal(t, "auto", r.URL.Query().Get("timezone"))
		_, _ = w.Write([]byte(`{"daily":{"time":["2024-01-01"],"weathercode":[0],"temperature_2m_max":[5],"temperature_2m_min":[1]}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL, srv.URL)
	body, err := p.Extended(context.Background(), 48.85, 2.35, 14)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "temperature_2m_max")
}

func TestOpenMeteoSuggest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/v1/search", r.URL.Path)
		_, _ = w.Write([]byte(`{"results":[
			{"id":2988507,"name":"Paris","latitude":48.85,"longitude":2.35,"country":"France","admin1":"Ile-de-France","timezone":"Europe/Paris"},
			{"id":1,"name":"Broken"},
			{"id":4717560,"name":"Paris","latitude":33.66,"longitude":-95.55,"country":"United States","admin1":"Texas"}
		]}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL, srv.URL)

	got, err := p.Suggest(context.Background(), "P")
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))

	got, err = p.Suggest(context.Background(), "Paris")
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "2988507", got[0].ID)
	assert.Equal(t, "Paris, Ile-de-France, France", got[0].Label)
	assert.Equal(t, "Europe/Paris", got[0].Timezone)
	assert.Equal(t, "Paris, Texas, United States", got[1].Label)
}
