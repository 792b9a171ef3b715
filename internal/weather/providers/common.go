package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/i474232898/weather-trip-planner/internal/common"
)

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 4 << 20

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errInvalidBody  = errors.New("response body is not valid JSON")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// statusError is a non-2xx upstream response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: %d", e.Unwrap(), e.code)
}

func (e *statusError) Unwrap() error {
	switch {
	case e.code == http.StatusTooManyRequests:
		return errRateLimited
	case e.code >= 500:
		return errServerError
	default:
		return errUnexpected
	}
}

// newCircuitBreaker returns a breaker for one group of upstream endpoints.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: countsAsHealthy,
	})
}

// countsAsHealthy decides what the breaker records as a success. Client errors
// (4xx other than 429) describe the request, not the provider, and a caller
// giving up is not an upstream fault.
func countsAsHealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 400 && se.code < 500 && se.code != http.StatusTooManyRequests
	}
	return false
}

// getJSON performs a single GET through the circuit breaker and returns the body.
// There are no retries; a non-2xx status or a body that is not JSON is an error.
func getJSON(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	endpoint string,
	params url.Values,
) ([]byte, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	u := endpoint
	if len(params) > 0 {
		u = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "weather-trip-planner")

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &statusError{code: resp.StatusCode}
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			return nil, readErr
		}
		if !gjson.ValidBytes(body) {
			return nil, errInvalidBody
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}

func requireKey(provider, env, key string) error {
	if key == "" {
		return fmt.Errorf("%w: %s api key is not configured (set %s)", common.ErrConfiguration, provider, env)
	}
	return nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%f", v)
}
