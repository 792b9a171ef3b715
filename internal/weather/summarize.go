package weather

import (
	"github.com/tidwall/gjson"
)

// Summarize reduces a bundle to average/min/max temperature and a description.
// Forecast samples win; without any, the current conditions' temp, temp_min and
// temp_max are used. Fields with no usable data stay nil.
func Summarize(b RawBundle) Summary {
	var s Summary

	samples := forecastTemperatures(b.Forecast)
	if len(samples) > 0 {
		sum, lo, hi := 0.0, samples[0], samples[0]
		for _, v := range samples {
			sum += v
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		s.AvgTemp = ptr(sum / float64(len(samples)))
		s.MinTemp = ptr(lo)
		s.MaxTemp = ptr(hi)
	} else {
		current := gjson.ParseBytes(b.Current)
		if v, ok := number(current.Get("main.temp")); ok {
			s.AvgTemp = ptr(v)
		}
		if v, ok := number(current.Get("main.temp_min")); ok {
			s.MinTemp = ptr(v)
		}
		if v, ok := number(current.Get("main.temp_max")); ok {
			s.MaxTemp = ptr(v)
		}
	}

	if desc, ok := text(gjson.GetBytes(b.Current, "weather.0.description")); ok {
		s.SummaryText = ptr(desc)
	} else if desc, ok := text(gjson.GetBytes(b.Forecast, "list.0.weather.0.description")); ok {
		s.SummaryText = ptr(desc)
	}

	return s
}

func forecastTemperatures(forecast []byte) []float64 {
	var temps []float64
	for _, entry := range array(gjson.GetBytes(forecast, "list")) {
		if v, ok := number(entry.Get("main.temp")); ok {
			temps = append(temps, v)
		}
	}
	return temps
}
