package webhook

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout marks a call aborted because its deadline expired.
	ErrTimeout = errors.New("webhook: request timed out")
	// ErrTransport marks network level failures (dial, reset, broken body).
	ErrTransport = errors.New("webhook: transport failure")
	// ErrValidation indicates input rejected before any request was sent.
	ErrValidation = errors.New("webhook: invalid input")
	// ErrDecode indicates a 2xx response whose body is not the expected JSON.
	ErrDecode = errors.New("webhook: malformed response")
)

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("webhook: %s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Status)
}

// TimeoutError is returned by the timeout-wrapped calls once the deadline passes.
type TimeoutError struct {
	Operation string
	After     time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("webhook: %s timed out after %s", e.Operation, e.After)
}

// Unwrap lets errors.Is(err, ErrTimeout) match.
func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// Timeout satisfies the net.Error style timeout check.
func (e *TimeoutError) Timeout() bool { return true }

// StatusCode extracts the upstream HTTP status from err, if any.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}
