package remote

import "errors"

var (
	// ErrUnavailable indicates the API could not be reached, or kept failing
	// with server errors until retries ran out.
	ErrUnavailable = errors.New("learning API unavailable")

	// ErrUnexpectedStatus indicates a non-retryable error status.
	ErrUnexpectedStatus = errors.New("unexpected status from learning API")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found on learning API")

	// ErrInvalidResponse indicates a body that failed snapshot validation.
	ErrInvalidResponse = errors.New("invalid response from learning API")
)
