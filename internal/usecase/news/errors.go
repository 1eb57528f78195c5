// Package news implements the proxy use case: turning a client query into one
// upstream provider request and filtering the result for display.
package news

import "errors"

// Sentinel errors for news use case operations.
var (
	// ErrMissingCredential indicates that no upstream API key is configured.
	// It is detected before any network call is attempted.
	ErrMissingCredential = errors.New("news api key not configured")

	// ErrUpstreamFailed indicates that the provider call failed for any reason:
	// transport error, non-success status or an undecodable body.
	ErrUpstreamFailed = errors.New("failed to fetch news from provider")
)
