// Package csrf coordinates fetching of the anti-CSRF token attached to
// mutating requests. At most one fetch is in flight at any time: every
// concurrent caller awaits the same result, a successful result is reused
// until Invalidate, and a failed fetch is forgotten so the next caller
// starts fresh.
package csrf

import (
	"context"
	"fmt"
	"sync"
)

// ConsentStore gates whether the token may be fetched at all. Without
// consent for the required cookie the server would reject the fetch, so the
// provider returns an empty token instead (meaning: omit the header).
type ConsentStore interface {
	HasConsentedToRequiredCookies() bool
}

// ConsentFunc adapts a plain func to a ConsentStore.
type ConsentFunc func() bool

func (f ConsentFunc) HasConsentedToRequiredCookies() bool { return f() }

// FetchFunc performs one token fetch against the server.
type FetchFunc func(ctx context.Context) (string, error)

// TokenError wraps a failed token fetch. Every caller awaiting the same
// in-flight fetch observes the same TokenError.
type TokenError struct {
	Err error
}

func (e *TokenError) Error() string { return fmt.Sprintf("csrf token fetch: %v", e.Err) }
func (e *TokenError) Unwrap() error { return e.Err }

// call is one shared fetch attempt: done is closed once token/err are set.
type call struct {
	done  chan struct{}
	token string
	err   error
}

// Provider is safe for concurrent use.
type Provider struct {
	consent ConsentStore
	fetch   FetchFunc

	mu   sync.Mutex
	call *call // nil when idle
}

// NewProvider constructs a Provider. consent may be nil, in which case the
// token is always eligible for fetching.
func NewProvider(consent ConsentStore, fetch FetchFunc) *Provider {
	return &Provider{consent: consent, fetch: fetch}
}

// Token returns the current anti-CSRF token, fetching it if necessary.
// Without cookie consent it returns "" immediately; callers treat an empty
// token as "omit the header", not as failure. The pending/resolved check and
// the start of a new fetch happen under one lock so two callers can never
// both become the initiator.
func (p *Provider) Token(ctx context.Context) (string, error) {
	if p.consent != nil && !p.consent.HasConsentedToRequiredCookies() {
		return "", nil
	}

	p.mu.Lock()
	c := p.call
	if c == nil {
		c = p.startLocked()
	}
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
	}
	if c.err != nil {
		return "", c.err
	}
	return c.token, nil
}

// Invalidate drops the remembered token and eagerly starts a replacement
// fetch, so the new token is hot before the next mutating call needs it.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.call = nil
	if p.consent == nil || p.consent.HasConsentedToRequiredCookies() {
		p.startLocked()
	}
}

// startLocked begins a fetch and records it as the shared in-flight call.
// Caller must hold p.mu.
func (p *Provider) startLocked() *call {
	c := &call{done: make(chan struct{})}
	p.call = c
	tokenFetchesTotal.Inc()
	go p.run(c)
	return c
}

func (p *Provider) run(c *call) {
	// The fetch deliberately outlives any single caller's context: waiters
	// come and go but the shared result must still settle.
	tok, err := p.fetch(context.Background())
	if err != nil {
		c.err = &TokenError{Err: err}
	} else {
		c.token = tok
	}
	close(c.done)

	if err != nil {
		// Failures are not cached: clear the slot (unless a newer fetch
		// already replaced it) so the next caller retries.
		p.mu.Lock()
		if p.call == c {
			p.call = nil
		}
		p.mu.Unlock()
	}
}
