// Package loqui is the Go client SDK for the Loqui discussion-forum API.
//
// The SDK layers typed forum operations over a request-coordination core:
// logical calls become deduplicated, cached HTTP exchanges with a
// single-flight anti-CSRF token shared by all concurrent mutations, and
// every response graph is normalized and mined for user identities so
// callers never observe absent creator references.
package loqui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/loqui/loqui-go/internal/csrf"
	"github.com/loqui/loqui-go/internal/identity"
	"github.com/loqui/loqui-go/internal/respcache"
	"github.com/loqui/loqui-go/internal/wire"
)

// ConsentStore gates whether the anti-CSRF token may be fetched: without
// consent for the required cookie, mutations go out without the token
// header and the server decides what to allow.
type ConsentStore interface {
	HasConsentedToRequiredCookies() bool
}

type Client struct {
	baseURL string
	http    *http.Client
	cfg     Config

	consent ConsentStore
	gate    *consentGate // non-nil only when the built-in gate is in use
	tokens  *csrf.Provider
	wire    *wire.Coordinator
	ids     *identity.Cache
}

// New constructs a Client for the API at baseURL. Configuration comes from
// LOQUI_* environment variables; functional options override it.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	c := &Client{
		baseURL: baseURL,
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	if c.consent == nil {
		// Consent starts ungranted: mutations go out without the token
		// header until GrantCookieConsent flips the gate.
		c.gate = &consentGate{}
		c.consent = c.gate
	}

	c.wire = wire.NewCoordinator(c.baseURL, c.http, respcache.New(), nil)
	// The provider fetches its token through the coordinator (a plain GET,
	// so no token is needed for the fetch itself), hence the two-step wiring.
	c.tokens = csrf.NewProvider(c.consent, c.fetchToken)
	c.wire.SetTokenSource(c.tokens)
	c.ids = identity.New(&identityResolver{wire: c.wire}, c.cfg.IdentityBatchSize)

	return c
}

// GrantCookieConsent records that the user consented to the required
// cookies and immediately warms a fresh anti-CSRF token, discarding any
// token obtained before consent.
func (c *Client) GrantCookieConsent() {
	if c.gate != nil {
		c.gate.granted.Store(true)
	}
	c.tokens.Invalidate()
}

// InvalidateToken discards the current anti-CSRF token and eagerly fetches
// a replacement. Call it after any event that invalidates the session.
func (c *Client) InvalidateToken() {
	c.tokens.Invalidate()
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "csrf-token"})
	if err != nil {
		return "", err
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", err
	}
	if body.Token == "" {
		return "", fmt.Errorf("server answered the token fetch without a token")
	}
	return body.Token, nil
}

// consentGate is the built-in ConsentStore: a single flag flipped by
// GrantCookieConsent.
type consentGate struct {
	granted atomic.Bool
}

func (g *consentGate) HasConsentedToRequiredCookies() bool { return g.granted.Load() }
