package scraper

import (
	"errors"
	"fmt"
)

// Fetch failure taxonomy. Item-level consumers classify with
// errors.Is / errors.As; none of these ever fails a whole batch.
var (
	// ErrTimeout means no response arrived within the configured
	// deadline and the in-flight request was aborted.
	ErrTimeout = errors.New("request timed out")

	// ErrNetwork covers DNS resolution and connection failures.
	ErrNetwork = errors.New("network failure")
)

// StatusError reports a response with status 400 or above. The fetch
// is not retried; the status is surfaced to the caller.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Code)
}
