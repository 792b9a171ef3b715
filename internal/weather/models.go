package weather

import (
	"encoding/json"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// RawBundle holds the unmodified provider responses for one location.
// Alerts is empty and Extended is null when those best-effort calls fail.
type RawBundle struct {
	Current  json.RawMessage   `json:"current"`
	Forecast json.RawMessage   `json:"forecast"`
	Alerts   []json.RawMessage `json:"alerts"`
	Extended json.RawMessage   `json:"extended"`
}

// Summary is the compact, storage-ready digest of a RawBundle.
type Summary struct {
	AvgTemp     *float64 `json:"avgTemp"`
	MinTemp     *float64 `json:"minTemp"`
	MaxTemp     *float64 `json:"maxTemp"`
	SummaryText *string  `json:"summaryText"`
}

// ForecastDay is one calendar day of a normalized forecast.
type ForecastDay struct {
	Date      string    `json:"date"`
	Label     string    `json:"label"`
	Summary   string    `json:"summary"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Condition Condition `json:"condition"`
}

const (
	// ShortRangeDays caps the 3-hourly forecast grouping.
	ShortRangeDays = 5
	// ExtendedDays caps the daily extended forecast.
	ExtendedDays = 14
)
