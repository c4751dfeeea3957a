package loqui

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/loqui/loqui-go/internal/types"
	"github.com/loqui/loqui-go/internal/wire"
)

// UserByName returns the identity for a display name, from the identity
// cache when possible, otherwise via one dedicated lookup. A nil user with
// a nil error means no such account exists.
func (c *Client) UserByName(ctx context.Context, name string) (*User, error) {
	return c.ids.ByName(ctx, name)
}

// UserByID returns the cached identity for an id, if known. Renderings of
// the same UUID that differ in casing or separators hit the same entry.
func (c *Client) UserByID(id string) (*User, bool) {
	return c.ids.ByID(id)
}

// UserIDByName returns the cached id for a display name, if known.
func (c *Client) UserIDByName(name string) (string, bool) {
	return c.ids.IDByName(name)
}

// ResolveUserNames resolves unknown display names in batches and caches the
// results; names the server cannot resolve are cached as misses.
func (c *Client) ResolveUserNames(ctx context.Context, names []string) error {
	return c.ids.ResolveNames(ctx, names)
}

// ResolveUserIDs resolves unknown ids in batches and caches the results.
func (c *Client) ResolveUserIDs(ctx context.Context, ids []string) error {
	return c.ids.ResolveIDs(ctx, ids)
}

// identityResolver implements identity.Resolver over the coordinator. Both
// batched endpoints answer positionally: result[i] corresponds to input[i].
type identityResolver struct {
	wire *wire.Coordinator
}

func (r *identityResolver) UsersByID(ctx context.Context, ids []string) ([]*types.User, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	raw, err := r.wire.Get(ctx, wire.Descriptor{Path: "users/by-id", Query: q})
	if err != nil {
		return nil, err
	}
	var body struct {
		Users []*types.User `json:"users"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body.Users, nil
}

func (r *identityResolver) IDsByName(ctx context.Context, names []string) ([]string, error) {
	q := url.Values{}
	q.Set("names", strings.Join(names, ","))
	raw, err := r.wire.Get(ctx, wire.Descriptor{Path: "users/by-name", Query: q})
	if err != nil {
		return nil, err
	}
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body.IDs, nil
}

func (r *identityResolver) UserByName(ctx context.Context, name string) (*types.User, error) {
	q := url.Values{}
	q.Set("name", name)
	raw, err := r.wire.Get(ctx, wire.Descriptor{Path: "users/find", Query: q})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var body struct {
		User *types.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body.User, nil
}
