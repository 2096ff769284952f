package crossmint

import (
	"errors"
	"fmt"
)

var (
	ErrCandidateRequired = errors.New("crossmint: candidate id required")
	ErrRateLimited       = errors.New("crossmint: rate limited")
	ErrMalformedResponse = errors.New("crossmint: malformed response")
)

// RemoteError is a remote rejection that retrying cannot fix (4xx) or that
// survived the retry budget (5xx).
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("crossmint: remote error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("crossmint: remote error: status %d: %s", e.StatusCode, e.Body)
}

// NetworkError is a transport failure that survived the retry budget.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "crossmint: network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
