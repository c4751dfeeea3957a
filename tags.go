package loqui

import (
	"context"
	"encoding/json"

	"github.com/loqui/loqui-go/internal/hydrate"
	"github.com/loqui/loqui-go/internal/wire"
)

// ListTags returns every tag with the categories it is attached to.
func (c *Client) ListTags(ctx context.Context) ([]*Tag, error) {
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "tags", CacheTTL: c.cfg.CacheTTL})
	if err != nil {
		return nil, err
	}
	var body struct {
		Tags []*Tag `json:"tags"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	tags := hydrate.Tags(body.Tags)
	c.ids.Harvest(tags)
	return tags, nil
}
