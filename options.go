package loqui

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option mutates the Client during New(). Options are applied before the
// coordinator and token provider are wired, so transport-related options
// take effect for every request including the token fetch.
type Option func(*Client) error

// WithHTTPClient injects a custom *http.Client. Useful for setting transport
// timeouts, tracing, custom TLS settings, or a persistent cookie jar.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout. Prefer
// per-request context deadlines where possible; this is a coarse safety net
// bounding one whole HTTP exchange. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Not for production: dumps include headers
// and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}

// WithConsentStore replaces the built-in consent gate with an external
// store, for callers that already track cookie consent elsewhere. When an
// external store is installed GrantCookieConsent only refreshes the token;
// flipping consent is the store's business.
func WithConsentStore(cs ConsentStore) Option {
	return func(c *Client) error {
		if cs == nil {
			return fmt.Errorf("nil consent store")
		}
		c.consent = cs
		return nil
	}
}

// WithConfig replaces the environment-derived configuration wholesale.
func WithConfig(cfg Config) Option {
	return func(c *Client) error {
		c.cfg = cfg
		if cfg.HTTPTimeout > 0 {
			c.http.Timeout = cfg.HTTPTimeout
		}
		return nil
	}
}
