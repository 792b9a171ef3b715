package weather

import (
	"encoding/json"
	"testing"

	"github.com/tj/assert"
)

func TestSummarizeFromForecastSamples(t *testing.T) {
	bundle := RawBundle{
		Current: json.RawMessage(`{"main":{"temp":99,"temp_min":1,"temp_max":100},"weather":[{"description":"clear sky"}]}`),
		Forecast: json.RawMessage(`{"list":[
			{"main":{"temp":10},"weather":[{"description":"rain"}]},
			{"main":{"temp":"n/a"}},
			{"main":{}},
			{"main":{"temp":20}},
			{"main":{"temp":30}}
		]}`),
	}

	s := Summarize(bundle)
	assert.InDelta(t, 20, *s.AvgTemp, 1e-9)
	assert.Equal(t, 10.0, *s.MinTemp)
	assert.Equal(t, 30.0, *s.MaxTemp)
	assert.Equal(t, "clear sky", *s.SummaryText)
}

func TestSummarizeFallsBackToCurrent(t *testing.T) {
	bundle := RawBundle{
		Current:  json.RawMessage(`{"main":{"temp":15,"temp_min":12,"temp_max":18}}`),
		Forecast: json.RawMessage(`{"list":[{"weather":[{"description":"light snow"}]}]}`),
	}

	s := Summarize(bundle)
	assert.Equal(t, 15.0, *s.AvgTemp)
	assert.Equal(t, 12.0, *s.MinTemp)
	assert.Equal(t, 18.0, *s.MaxTemp)
	assert.Equal(t, "light snow", *s.SummaryText)
}

func TestSummarizeEmptyBundle(t *testing.T) {
	s := Summarize(RawBundle{})
	assert.Nil(t, s.AvgTemp)
	assert.Nil(t, s.MinTemp)
	assert.Nil(t, s.MaxTemp)
	assert.Nil(t, s.SummaryText)
}

func TestSummarizeMalformedPayloads(t *testing.T) {
	bundle := RawBundle{
		Current:  json.RawMessage(`{"main":"broken","weather":{}}`),
		Forecast: json.RawMessage(`{"list":{"main":{"temp":5}}}`),
	}

	s := Summarize(bundle)
	assert.Nil(t, s.AvgTemp)
	assert.Nil(t, s.SummaryText)
}
