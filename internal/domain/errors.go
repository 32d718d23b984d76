package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested movie or listing does not exist
	ErrNotFound = errors.New("movie not found")

	// ErrServerOffline indicates the movie API is unreachable
	ErrServerOffline = errors.New("movie API is unreachable")

	// ErrAuthFailed indicates the API token was rejected
	ErrAuthFailed = errors.New("API token is invalid")

	// ErrRateLimited indicates the API asked us to slow down
	ErrRateLimited = errors.New("API rate limit exceeded")

	// ErrNotConfigured indicates no API token is available
	ErrNotConfigured = errors.New("no API token configured")
)

// IsRetryable reports whether a failed fetch is worth another attempt
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrAuthFailed), errors.Is(err, ErrNotFound), errors.Is(err, ErrNotConfigured):
		return false
	default:
		return true
	}
}
