package order

import (
	"errors"
	"fmt"
)

// ErrSubmissionInFlight is returned when Submit is invoked while another
// submission has not resolved yet. Exactly one submission may be in flight
// per pipeline.
var ErrSubmissionInFlight = errors.New("order submission already in flight")

// TransportError marks a transport-level failure: network unreachable,
// timeout, server unavailable. It is the only failure kind that triggers
// the offline fallback.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BusinessError marks a deterministic server-side rejection. Retrying or
// falling back would not change the outcome, so it propagates immediately.
type BusinessError struct {
	StatusCode int
	Message    string
}

func (e *BusinessError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("order rejected (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("order rejected (status %d)", e.StatusCode)
}

// IsTransportFailure reports whether err is a transport-level failure.
// Classification is an explicit predicate, not incidental control flow.
func IsTransportFailure(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsBusinessRejection reports whether err is a server-side rejection
func IsBusinessRejection(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}
