package weather

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const dateLayout = "2006-01-02"

type dayBucket struct {
	date    string
	summary string
	temps   []float64
}

// NormalizeForecast groups a 3-hourly forecast document ({"list": [...]}) by calendar
// date. Each day takes the description of its first entry and the extremes of its
// temperatures. Days come out in first-seen order, not sorted, capped at limit
// (limit <= 0 means no cap).
func NormalizeForecast(forecast []byte, limit int) []ForecastDay {
	var (
		order   []*dayBucket
		buckets = make(map[string]*dayBucket)
	)

	for _, entry := range array(gjson.GetBytes(forecast, "list")) {
		date := entryDate(entry)
		if date == "" {
			continue
		}
		temp, ok := number(entry.Get("main.temp"))
		if !ok {
			continue
		}

		b, seen := buckets[date]
		if !seen {
			desc, _ := text(entry.Get("weather.0.description"))
			b = &dayBucket{date: date, summary: desc}
			buckets[date] = b
			order = append(order, b)
		}
		b.temps = append(b.temps, temp)
	}

	days := make([]ForecastDay, 0, len(order))
	for _, b := range order {
		if limit > 0 && len(days) >= limit {
			break
		}
		hi, lo := b.temps[0], b.temps[0]
		for _, v := range b.temps[1:] {
			if v > hi {
				hi = v
			}
			if v < lo {
				lo = v
			}
		}
		days = append(days, ForecastDay{
			Date:      b.date,
			Label:     dayLabel(b.date),
			Summary:   b.summary,
			High:      hi,
			Low:       lo,
			Condition: ConditionFor(b.summary),
		})
	}
	return days
}

// NormalizeExtended maps a daily series document ({"daily": {"time": [...], ...}})
// to one entry per index, up to limit. Indexes without any temperature are skipped;
// a single missing extreme takes the other one's value.
func NormalizeExtended(extended []byte, limit int) []ForecastDay {
	daily := gjson.GetBytes(extended, "daily")
	times := array(daily.Get("time"))
	codes := array(daily.Get("weathercode"))
	if codes == nil {
		codes = array(daily.Get("weather_code"))
	}
	highs := array(daily.Get("temperature_2m_max"))
	lows := array(daily.Get("temperature_2m_min"))

	days := make([]ForecastDay, 0, len(times))
	for i, t := range times {
		if limit > 0 && len(days) >= limit {
			break
		}
		date, ok := text(t)
		if !ok {
			continue
		}

		hi, okHi := number(at(highs, i))
		lo, okLo := number(at(lows, i))
		switch {
		case !okHi && !okLo:
			continue
		case !okHi:
			hi = lo
		case !okLo:
			lo = hi
		}

		summary := "Unknown"
		if code, ok := number(at(codes, i)); ok {
			summary = DescribeCode(int(code))
		}

		days = append(days, ForecastDay{
			Date:      date,
			Label:     dayLabel(date),
			Summary:   summary,
			High:      hi,
			Low:       lo,
			Condition: ConditionFor(summary),
		})
	}
	return days
}

// FilterRange keeps days whose date falls within [start, end], compared by calendar date.
// Days with an unparseable date are always kept.
func FilterRange(days []ForecastDay, start, end time.Time) []ForecastDay {
	from := calendarDate(start)
	to := calendarDate(end)

	out := make([]ForecastDay, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(dateLayout, d.Date)
		if err != nil || (!t.Before(from) && !t.After(to)) {
			out = append(out, d)
		}
	}
	return out
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// entryDate returns the date portion of dt_txt ("2024-01-01 12:00:00"),
// falling back to the unix dt field in UTC.
func entryDate(entry gjson.Result) string {
	if s, ok := text(entry.Get("dt_txt")); ok {
		if i := strings.IndexAny(s, " T"); i >= 0 {
			return s[:i]
		}
		return s
	}
	if dt, ok := number(entry.Get("dt")); ok {
		return time.Unix(int64(dt), 0).UTC().Format(dateLayout)
	}
	return ""
}

func dayLabel(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}
