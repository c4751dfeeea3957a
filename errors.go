package loqui

import (
	"errors"

	"github.com/loqui/loqui-go/internal/csrf"
	"github.com/loqui/loqui-go/internal/wire"
)

// ErrNoContent is returned when a response carried no parseable payload and
// the request did not explicitly allow an empty result.
var ErrNoContent = wire.ErrNoContent

// Re-export the error types so callers can match against a single package.
type (
	// StatusError reports a non-zero application status code.
	StatusError = wire.StatusError
	// TransportError reports a failed HTTP exchange. Not retried.
	TransportError = wire.TransportError
	// TokenError reports a failed anti-CSRF token fetch; every waiter of
	// the shared fetch observes the same one.
	TokenError = csrf.TokenError
)

// IsNotFound reports whether err is the server's "Not found" status.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == wire.StatusNotFound
}
