package common

import "errors"

var (
	// ErrConfiguration is returned when a required credential or setting is missing.
	// It is raised before any network I/O is attempted.
	ErrConfiguration = errors.New("configuration error")

	// ErrResolution is returned when a location query could not be geocoded.
	ErrResolution = errors.New("location resolution failed")

	// ErrWeatherFetch is returned when a mandatory weather call failed.
	ErrWeatherFetch = errors.New("weather fetch failed")
)
