package weather

import (
	"strings"

	"github.com/i474232898/weather-trip-planner/internal/common"
)

var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// DescribeCode maps a WMO weather code to text.
func DescribeCode(code int) string {
	if s, ok := weatherCodes[code]; ok {
		return s
	}
	return "Mixed conditions"
}

// ConditionFor maps a free-text description to a coarse condition.
func ConditionFor(description string) Condition {
	d := strings.ToLower(description)
	switch {
	case d == "":
		return ConditionUnknown
	case common.HasAny(d, "thunder", "storm", "lightning"):
		return ConditionStorm
	case common.HasAny(d, "snow", "sleet", "blizzard"):
		return ConditionSnow
	case common.HasAny(d, "rain", "shower", "drizzle"):
		return ConditionRain
	case common.HasAny(d, "mist", "fog", "haze"):
		return ConditionMist
	case common.HasAny(d, "cloud", "overcast"):
		return ConditionCloudy
	case common.HasAny(d, "sun", "clear"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}
