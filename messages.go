package loqui

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/loqui/loqui-go/internal/hydrate"
	"github.com/loqui/loqui-go/internal/wire"
)

// ListMessages returns one page of a thread's messages.
func (c *Client) ListMessages(ctx context.Context, threadID string, page int) ([]*Message, error) {
	if err := requireID(threadID, "threadId"); err != nil {
		return nil, err
	}
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "threads", Args: []string{threadID, "messages"}, Query: q, CacheTTL: c.cfg.CacheTTL})
	if err != nil {
		return nil, err
	}
	return c.decodeMessages(raw, nil)
}

// ListMessagesByUser returns messages authored by user. The server omits
// createdBy on this endpoint since it is implied; hydration fills it back
// in from the request context.
func (c *Client) ListMessagesByUser(ctx context.Context, user *User) ([]*Message, error) {
	if user == nil {
		return nil, requireID("", "userId")
	}
	if err := requireID(user.ID, "userId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "users", Args: []string{user.ID, "messages"}})
	if err != nil {
		return nil, err
	}
	return c.decodeMessages(raw, user)
}

func (c *Client) decodeMessages(raw json.RawMessage, contextual *User) ([]*Message, error) {
	var body struct {
		Messages []*Message `json:"messages"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	msgs := hydrate.Messages(body.Messages, contextual)
	c.ids.Harvest(msgs)
	return msgs, nil
}

// PostMessage appends a message to a thread.
func (c *Client) PostMessage(ctx context.Context, threadID string, req PostMessageRequest) (*Message, error) {
	if err := requireID(threadID, "threadId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Post(ctx, wire.Descriptor{Path: "threads", Args: []string{threadID, "messages"}, Body: req})
	if err != nil {
		return nil, err
	}
	return c.decodeMessage(raw)
}

// EditMessage replaces a message's content.
func (c *Client) EditMessage(ctx context.Context, messageID, content string) (*Message, error) {
	if err := requireID(messageID, "messageId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Put(ctx, wire.Descriptor{
		Path: "messages", Args: []string{messageID},
		Body: map[string]string{"content": content},
	})
	if err != nil {
		return nil, err
	}
	return c.decodeMessage(raw)
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	if err := requireID(messageID, "messageId"); err != nil {
		return err
	}
	_, err := c.wire.Delete(ctx, wire.Descriptor{Path: "messages", Args: []string{messageID}, AllowEmpty: true})
	return err
}

func (c *Client) decodeMessage(raw json.RawMessage) (*Message, error) {
	var body struct {
		Message *Message `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	m := hydrate.Message(body.Message, nil)
	c.ids.Harvest(m)
	return m, nil
}

// ListComments returns the comments attached to a message.
func (c *Client) ListComments(ctx context.Context, messageID string) ([]*Comment, error) {
	if err := requireID(messageID, "messageId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "messages", Args: []string{messageID, "comments"}})
	if err != nil {
		return nil, err
	}
	var body struct {
		Comments []*Comment `json:"comments"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	comments := hydrate.Comments(body.Comments, nil)
	c.ids.Harvest(comments)
	return comments, nil
}

// PostComment attaches a comment to a message.
func (c *Client) PostComment(ctx context.Context, messageID, content string) (*Comment, error) {
	if err := requireID(messageID, "messageId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Post(ctx, wire.Descriptor{
		Path: "messages", Args: []string{messageID, "comments"},
		Body: map[string]string{"content": content},
	})
	if err != nil {
		return nil, err
	}
	var body struct {
		Comment *Comment `json:"comment"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	cm := hydrate.Comment(body.Comment, nil)
	c.ids.Harvest(cm)
	return cm, nil
}

// ListAttachments returns a message's attachments.
func (c *Client) ListAttachments(ctx context.Context, messageID string) ([]*Attachment, error) {
	if err := requireID(messageID, "messageId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "messages", Args: []string{messageID, "attachments"}})
	if err != nil {
		return nil, err
	}
	var body struct {
		Attachments []*Attachment `json:"attachments"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	atts := hydrate.Attachments(body.Attachments, nil)
	c.ids.Harvest(atts)
	return atts, nil
}

// DownloadAttachment fetches an attachment's raw bytes, bypassing envelope
// parsing and the response cache.
func (c *Client) DownloadAttachment(ctx context.Context, attachmentID string) ([]byte, error) {
	if err := requireID(attachmentID, "attachmentId"); err != nil {
		return nil, err
	}
	raw, err := c.wire.Get(ctx, wire.Descriptor{Path: "attachments", Args: []string{attachmentID, "download"}, RawBody: true})
	if err != nil {
		return nil, err
	}
	return raw, nil
}
