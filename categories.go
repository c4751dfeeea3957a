package loqui

import (
	"context"
	"encoding/json"

	"github.com/loqui/loqui-go/internal/hydrate"
	"github.com/loqui/loqui-go/internal/wire"
)

// ListCategories returns the category tree. Results are served from the
// response cache within the configured TTL.
func (c *Client) ListCategories(ctx context.Context) ([]*Category, error) {
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "categories", CacheTTL: c.cfg.CacheTTL})
	if err != nil {
		return nil, err
	}
	var body struct {
		Categories []*Category `json:"categories"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	cats := hydrate.Categories(body.Categories)
	c.ids.Harvest(cats)
	return cats, nil
}

// GetCategory retrieves one category with its children and tags.
func (c *Client) GetCategory(ctx context.Context, categoryID string) (*Category, error) {
	if err := requireID(categoryID, "categoryId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "categories", Args: []string{categoryID}, CacheTTL: c.cfg.CacheTTL})
	if err != nil {
		return nil, err
	}
	var body struct {
		Category *Category `json:"category"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	cat := hydrate.Category(body.Category)
	c.ids.Harvest(cat)
	return cat, nil
}
