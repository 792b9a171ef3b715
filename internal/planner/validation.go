package planner

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxTripDays is the longest allowed trip, counting both end dates.
const MaxTripDays = 16

var validate = validator.New()

// ValidationError collects every problem found in a request payload.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func invalid(messages ...string) error {
	return &ValidationError{Messages: messages}
}

// validTrip is a TripInput that passed validation.
type validTrip struct {
	name     string
	location string
	start    time.Time
	end      time.Time
}

var tripMessages = map[string]string{
	"Name.required":          "Trip name is required",
	"LocationInput.required": "Location is required",
	"LocationInput.min":      "Location must be at least 3 characters",
	"StartDate.required":     "Start and end dates are required",
	"EndDate.required":       "Start and end dates are required",
}

func validateTrip(in TripInput) (validTrip, error) {
	in = TripInput{
		Name:          strings.TrimSpace(in.Name),
		LocationInput: strings.TrimSpace(in.LocationInput),
		StartDate:     strings.TrimSpace(in.StartDate),
		EndDate:       strings.TrimSpace(in.EndDate),
	}

	var messages []string
	datesMissing := false
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return validTrip{}, err
		}
		for _, fe := range fieldErrs {
			msg, ok := tripMessages[fe.Field()+"."+fe.Tag()]
			if !ok {
				msg = fe.Error()
			}
			if fe.Field() == "StartDate" || fe.Field() == "EndDate" {
				datesMissing = true
			}
			messages = appendUnique(messages, msg)
		}
	}

	v := validTrip{name: in.Name, location: in.LocationInput}
	if !datesMissing {
		start, end, msg := parseDateRange(in.StartDate, in.EndDate)
		if msg != "" {
			messages = append(messages, msg)
		}
		v.start, v.end = start, end
	}

	if len(messages) > 0 {
		return validTrip{}, invalid(messages...)
	}
	return v, nil
}

func parseDateRange(startRaw, endRaw string) (time.Time, time.Time, string) {
	start, err1 := parseDate(startRaw)
	end, err2 := parseDate(endRaw)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, "Invalid trip dates"
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, "Start date must be before end date"
	}

	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days > MaxTripDays {
		return time.Time{}, time.Time{}, "Trip length cannot exceed 16 days"
	}
	return start, end, ""
}

// parseDate accepts YYYY-MM-DD (midnight UTC) or RFC3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

var favoriteMessages = map[string]string{
	"Label":         "Label is required.",
	"LocationInput": "Original search input is missing.",
	"Latitude":      "Valid coordinates are required.",
	"Longitude":     "Valid coordinates are required.",
}

func validateFavorite(in FavoriteInput) (FavoriteInput, error) {
	in.Label = strings.TrimSpace(in.Label)
	in.LocationInput = strings.TrimSpace(in.LocationInput)

	err := validate.Struct(in)
	if err == nil {
		return in, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return FavoriteInput{}, err
	}

	var messages []string
	for _, fe := range fieldErrs {
		msg, ok := favoriteMessages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		messages = appendUnique(messages, msg)
	}
	return FavoriteInput{}, invalid(messages...)
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
