package wire

import (
	"errors"
	"fmt"
)

// ErrNoContent is returned when a response carries no parseable payload and
// the request did not explicitly allow an empty result.
var ErrNoContent = errors.New("response carried no content")

// TransportError wraps a failure of the HTTP exchange itself (the request
// never completed). It is surfaced as-is; this layer does not retry.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-zero application status code carried in an
// otherwise successful response envelope.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server status %d: %s", e.Code, e.Message)
}
