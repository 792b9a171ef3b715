package weather

import (
	"math"

	"github.com/tidwall/gjson"
)

// Provider payloads are read through gjson paths; a missing or mistyped field is
// treated as absent data rather than an error.

func number(r gjson.Result) (float64, bool) {
	if r.Type != gjson.Number {
		return 0, false
	}
	v := r.Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func text(r gjson.Result) (string, bool) {
	if r.Type != gjson.String || r.Str == "" {
		return "", false
	}
	return r.Str, true
}

func array(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

func at(items []gjson.Result, i int) gjson.Result {
	if i < 0 || i >= len(items) {
		return gjson.Result{}
	}
	return items[i]
}

func ptr[T any](v T) *T {
	return &v
}
