package newsapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrProviderUnavailable is returned without a network call while the circuit breaker is open.
var ErrProviderUnavailable = errors.New("newsapi unavailable: circuit breaker open")

// ErrBodyTooLarge is returned when a response exceeds Config.MaxBodySize.
var ErrBodyTooLarge = errors.New("newsapi response body too large")

// StatusError describes a provider-side failure.
// Code and Message come from the provider's error body when it sent one.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("newsapi: status %d", e.StatusCode)
	}
	return fmt.Sprintf("newsapi: status %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// IsCallerError reports whether err is a provider rejection of the request
// itself (bad key, bad parameters): a 4xx other than 429. Such errors say
// nothing about provider health, so they do not trip the circuit breaker.
func IsCallerError(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	code := statusErr.StatusCode
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}
