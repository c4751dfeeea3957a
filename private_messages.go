package loqui

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/loqui/loqui-go/internal/hydrate"
	"github.com/loqui/loqui-go/internal/wire"
)

// Private-message folders understood by the server.
const (
	FolderInbox = "inbox"
	FolderSent  = "sent"
)

// ListPrivateMessages returns the caller's private messages in folder.
// Never cached: mailbox contents must always be fresh.
func (c *Client) ListPrivateMessages(ctx context.Context, folder string) ([]*PrivateMessage, error) {
	q := url.Values{}
	if folder != "" {
		q.Set("folder", folder)
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "private-messages", Query: q})
	if err != nil {
		return nil, err
	}
	var body struct {
		PrivateMessages []*PrivateMessage `json:"privateMessages"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	pms := hydrate.PrivateMessages(body.PrivateMessages)
	c.ids.Harvest(pms)
	return pms, nil
}

// SendPrivateMessage delivers mail to one recipient, addressed by id or by
// display name.
func (c *Client) SendPrivateMessage(ctx context.Context, req SendPrivateMessageRequest) (*PrivateMessage, error) {
	if req.ToID == "" && req.ToName == "" {
		return nil, requireID("", "toId or toName")
	}
	raw, err := c.wire.Post(ctx, wire.Descriptor{Path: "private-messages", Body: req})
	if err != nil {
		return nil, err
	}
	var body struct {
		PrivateMessage *PrivateMessage `json:"privateMessage"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	pm := hydrate.PrivateMessage(body.PrivateMessage)
	c.ids.Harvest(pm)
	return pm, nil
}
