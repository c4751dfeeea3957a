package loqui

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/loqui/loqui-go/internal/hydrate"
	"github.com/loqui/loqui-go/internal/wire"
)

// ListThreadsOptions narrows a thread listing. Zero values mean "no filter".
type ListThreadsOptions struct {
	CategoryID string
	Tag        string
	Page       int
}

// ListThreads returns threads matching opts, newest first.
func (c *Client) ListThreads(ctx context.Context, opts ListThreadsOptions) ([]*Thread, error) {
	q := url.Values{}
	if opts.CategoryID != "" {
		q.Set("category", opts.CategoryID)
	}
	if opts.Tag != "" {
		q.Set("tag", opts.Tag)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "threads", Query: q, CacheTTL: c.cfg.CacheTTL})
	if err != nil {
		return nil, err
	}
	var body struct {
		Threads []*Thread `json:"threads"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	threads := hydrate.Threads(body.Threads, nil)
	c.ids.Harvest(threads)
	return threads, nil
}

// GetThread retrieves one thread.
func (c *Client) GetThread(ctx context.Context, threadID string) (*Thread, error) {
	if err := requireID(threadID, "threadId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "threads", Args: []string{threadID}})
	if err != nil {
		return nil, err
	}
	var body struct {
		Thread *Thread `json:"thread"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	th := hydrate.Thread(body.Thread, nil)
	c.ids.Harvest(th)
	return th, nil
}

// CreateThread opens a new thread with its first message.
func (c *Client) CreateThread(ctx context.Context, req CreateThreadRequest) (*Thread, error) {
	if err := requireID(req.CategoryID, "categoryId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Post(ctx, wire.Descriptor{Path: "threads", Body: req})
	if err != nil {
		return nil, err
	}
	var body struct {
		Thread *Thread `json:"thread"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	th := hydrate.Thread(body.Thread, nil)
	c.ids.Harvest(th)
	return th, nil
}

// DeleteThread removes a thread and all its messages.
func (c *Client) DeleteThread(ctx context.Context, threadID string) error {
	if err := requireID(threadID, "threadId"); err != nil {
		return err
	}
	_, err := c.wire.Delete(ctx, wire.Descriptor{Path: "threads", Args: []string{threadID}, AllowEmpty: true})
	return err
}
