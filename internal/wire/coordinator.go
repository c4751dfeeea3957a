// Package wire turns logical API calls into deduplicated, cached HTTP
// exchanges: it builds the request signature, consults the response cache,
// attaches the anti-CSRF token to mutating verbs, performs exactly one
// exchange, and parses the prefixed response envelope into a payload or a
// uniform error.
package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/loqui/loqui-go/internal/respcache"
)

// Doer performs a single HTTP exchange. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies the anti-CSRF token for mutating requests. An empty
// token with a nil error means "omit the header".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenHeader is the header carrying the anti-CSRF token.
const TokenHeader = "X-CSRF-Token"

// Coordinator resolves Descriptors against one API base URL.
type Coordinator struct {
	base   string
	http   Doer
	cache  *respcache.Cache
	tokens TokenSource
}

// NewCoordinator wires the coordinator's collaborators. cache and tokens may
// be nil, which disables response caching and token attachment respectively.
func NewCoordinator(base string, doer Doer, cache *respcache.Cache, tokens TokenSource) *Coordinator {
	return &Coordinator{base: strings.TrimRight(base, "/"), http: doer, cache: cache, tokens: tokens}
}

// SetTokenSource installs the token source after construction. The provider
// fetches its token through this same coordinator, so the two are wired in
// two steps.
func (c *Coordinator) SetTokenSource(ts TokenSource) { c.tokens = ts }

// Get executes d with the GET verb.
func (c *Coordinator) Get(ctx context.Context, d Descriptor) (json.RawMessage, error) {
	d.Method = http.MethodGet
	return c.Do(ctx, d)
}

// Post executes d with the POST verb.
func (c *Coordinator) Post(ctx context.Context, d Descriptor) (json.RawMessage, error) {
	d.Method = http.MethodPost
	return c.Do(ctx, d)
}

// Put executes d with the PUT verb.
func (c *Coordinator) Put(ctx context.Context, d Descriptor) (json.RawMessage, error) {
	d.Method = http.MethodPut
	return c.Do(ctx, d)
}

// Delete executes d with the DELETE verb.
func (c *Coordinator) Delete(ctx context.Context, d Descriptor) (json.RawMessage, error) {
	d.Method = http.MethodDelete
	return c.Do(ctx, d)
}

// Do resolves d: cache consult, token attach, one exchange, envelope parse,
// cache populate. No retry; the caller decides how to handle failure.
func (c *Coordinator) Do(ctx context.Context, d Descriptor) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := c.signature(d)

	if d.CacheTTL > 0 && c.cache != nil {
		if v, ok := c.cache.Get(u); ok {
			cacheHitsTotal.Inc()
			log.Debug().Str("url", u).Msg("response cache hit")
			return v, nil
		}
		cacheMissesTotal.Inc()
	}

	var token string
	if mutating(d.Method) && c.tokens != nil {
		var err error
		if token, err = c.tokens.Token(ctx); err != nil {
			return nil, err
		}
	}

	body, contentType, err := encodeBody(d.Body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, d.Method, u, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range d.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	requestsTotal.WithLabelValues(d.Method).Inc()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: d.Method, URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: d.Method, URL: u, Err: err}
	}
	if d.RawBody {
		return raw, nil
	}

	payload, ok := stripPayload(raw)
	var env envelope
	if ok {
		if err := json.Unmarshal(payload, &env); err != nil {
			ok = false
		}
	}
	if !ok {
		if d.AllowEmpty {
			return nil, nil
		}
		return nil, ErrNoContent
	}
	if env.Status != StatusOk {
		msg := env.StatusText
		if msg == "" {
			msg = StatusMessage(env.Status)
		}
		return nil, &StatusError{Code: env.Status, Message: msg}
	}

	if d.CacheTTL > 0 && c.cache != nil {
		c.cache.Put(u, payload, d.CacheTTL)
	}
	return payload, nil
}

// signature is the fully-qualified URL including sorted, encoded query
// parameters; it doubles as the response-cache key.
func (c *Coordinator) signature(d Descriptor) string {
	var sb strings.Builder
	sb.WriteString(c.base)
	sb.WriteByte('/')
	sb.WriteString(strings.TrimLeft(d.Path, "/"))
	for _, a := range d.Args {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(a))
	}
	if len(d.Query) > 0 {
		sb.WriteByte('?')
		sb.WriteString(d.Query.Encode())
	}
	return sb.String()
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case string:
		return strings.NewReader(b), "", nil
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(buf), "application/json", nil
	}
}
