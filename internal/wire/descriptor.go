package wire

import (
	"net/http"
	"net/url"
	"time"
)

// Descriptor describes one logical request attempt. It is immutable once
// handed to the coordinator.
type Descriptor struct {
	// Path is the endpoint path relative to the API base, without a leading
	// slash. Args are appended as escaped path segments.
	Path string
	Args []string

	// Query parameters; encoding sorts keys, so equivalent queries produce
	// the same cache key.
	Query url.Values

	// Method is fixed by the verb wrappers.
	Method string

	// Body is sent as-is when []byte or string, otherwise JSON-encoded.
	Body any

	// CacheTTL > 0 makes the parsed payload eligible for the response cache.
	CacheTTL time.Duration

	// AllowEmpty suppresses ErrNoContent for endpoints that legitimately
	// answer with an empty body (deletes, acknowledgements).
	AllowEmpty bool

	// RawBody skips envelope parsing entirely and returns the body bytes
	// unchanged (file downloads).
	RawBody bool

	// Header entries are added to the outgoing request.
	Header http.Header
}
