// Package hydrate normalizes decoded payloads so downstream consumers never
// observe absent fields: entity lists default to empty slices with nil
// entries filtered out, an absent latest-message summary becomes a
// well-defined placeholder, and every creator reference is filled with
// either the embedded record, a caller-supplied contextual identity, or the
// unknown-identity sentinel. Normalization is idempotent.
package hydrate

import (
	"github.com/loqui/loqui-go/internal/types"
)

// pass tracks visited nodes so stitched-together graphs (a category whose
// parent lists it as a child, a message referencing its own thread's latest
// message) terminate.
type pass struct {
	seen map[any]struct{}
}

func newPass() *pass { return &pass{seen: make(map[any]struct{})} }

func (p *pass) visited(node any) bool {
	if _, ok := p.seen[node]; ok {
		return true
	}
	p.seen[node] = struct{}{}
	return false
}

// Categories normalizes a category list in place and returns it.
func Categories(cs []*types.Category) []*types.Category {
	p := newPass()
	out := compact(cs)
	for _, c := range out {
		p.category(c)
	}
	return out
}

// Category normalizes a single category tree.
func Category(c *types.Category) *types.Category {
	newPass().category(c)
	return c
}

// Tags normalizes a tag list in place and returns it.
func Tags(ts []*types.Tag) []*types.Tag {
	p := newPass()
	out := compact(ts)
	for _, t := range out {
		p.tag(t)
	}
	return out
}

// Threads normalizes a thread list. fallback, when non-nil, is the
// contextual identity used for creators the server omitted (a list known to
// belong to one user); pass nil to default to the unknown sentinel.
func Threads(ts []*types.Thread, fallback *types.User) []*types.Thread {
	p := newPass()
	out := compact(ts)
	for _, t := range out {
		p.thread(t, fallback)
	}
	return out
}

// Thread normalizes a single thread.
func Thread(t *types.Thread, fallback *types.User) *types.Thread {
	newPass().thread(t, fallback)
	return t
}

// Messages normalizes a message list with an optional contextual creator.
func Messages(ms []*types.Message, fallback *types.User) []*types.Message {
	p := newPass()
	out := compact(ms)
	for _, m := range out {
		p.message(m, fallback)
	}
	return out
}

// Message normalizes a single message.
func Message(m *types.Message, fallback *types.User) *types.Message {
	newPass().message(m, fallback)
	return m
}

// Comments normalizes a comment list.
func Comments(cs []*types.Comment, fallback *types.User) []*types.Comment {
	p := newPass()
	out := compact(cs)
	for _, c := range out {
		p.comment(c, fallback)
	}
	return out
}

// Comment normalizes a single comment.
func Comment(c *types.Comment, fallback *types.User) *types.Comment {
	newPass().comment(c, fallback)
	return c
}

// PrivateMessages normalizes a private-message list.
func PrivateMessages(pms []*types.PrivateMessage) []*types.PrivateMessage {
	p := newPass()
	out := compact(pms)
	for _, pm := range out {
		p.privateMessage(pm)
	}
	return out
}

// PrivateMessage normalizes a single private message.
func PrivateMessage(pm *types.PrivateMessage) *types.PrivateMessage {
	newPass().privateMessage(pm)
	return pm
}

// Attachments normalizes an attachment list.
func Attachments(as []*types.Attachment, fallback *types.User) []*types.Attachment {
	p := newPass()
	out := compact(as)
	for _, a := range out {
		p.attachment(a, fallback)
	}
	return out
}

func (p *pass) category(c *types.Category) {
	if c == nil || p.visited(c) {
		return
	}
	c.Children = compact(c.Children)
	for _, child := range c.Children {
		p.category(child)
	}
	c.Tags = compact(c.Tags)
	for _, t := range c.Tags {
		p.tag(t)
	}
	p.category(c.Parent)
	c.CreatedBy = fill(c.CreatedBy, nil)
}

func (p *pass) tag(t *types.Tag) {
	if t == nil || p.visited(t) {
		return
	}
	t.Categories = compact(t.Categories)
	for _, c := range t.Categories {
		p.category(c)
	}
	t.CreatedBy = fill(t.CreatedBy, nil)
}

func (p *pass) thread(t *types.Thread, fallback *types.User) {
	if t == nil || p.visited(t) {
		return
	}
	t.Categories = compact(t.Categories)
	for _, c := range t.Categories {
		p.category(c)
	}
	t.Tags = compact(t.Tags)
	for _, tag := range t.Tags {
		p.tag(tag)
	}
	if t.LatestMessage == nil {
		t.LatestMessage = emptyMessage()
	}
	p.message(t.LatestMessage, fallback)
	// Contextual defaults apply only after children normalized, so nested
	// fallbacks never leak across unrelated subtrees.
	t.CreatedBy = fill(t.CreatedBy, fallback)
}

func (p *pass) message(m *types.Message, fallback *types.User) {
	if m == nil || p.visited(m) {
		return
	}
	m.Attachments = compact(m.Attachments)
	for _, a := range m.Attachments {
		p.attachment(a, nil)
	}
	m.Comments = compact(m.Comments)
	for _, c := range m.Comments {
		p.comment(c, nil)
	}
	p.thread(m.Thread, nil)
	m.CreatedBy = fill(m.CreatedBy, fallback)
}

func (p *pass) comment(c *types.Comment, fallback *types.User) {
	if c == nil || p.visited(c) {
		return
	}
	p.message(c.Message, nil)
	c.CreatedBy = fill(c.CreatedBy, fallback)
}

func (p *pass) privateMessage(pm *types.PrivateMessage) {
	if pm == nil || p.visited(pm) {
		return
	}
	pm.Attachments = compact(pm.Attachments)
	for _, a := range pm.Attachments {
		p.attachment(a, nil)
	}
	pm.From = fill(pm.From, nil)
	pm.To = fill(pm.To, nil)
}

func (p *pass) attachment(a *types.Attachment, fallback *types.User) {
	if a == nil || p.visited(a) {
		return
	}
	a.CreatedBy = fill(a.CreatedBy, fallback)
}

// emptyMessage is the placeholder for an entirely absent latest-message
// summary: empty id and content, zero timestamps, approved.
func emptyMessage() *types.Message {
	return &types.Message{Approved: true}
}

// fill resolves a creator reference: embedded record wins, then the
// contextual identity, then the unknown sentinel.
func fill(u, fallback *types.User) *types.User {
	if u != nil {
		return u
	}
	if fallback != nil {
		return fallback
	}
	return types.UnknownUser()
}

// compact replaces a possibly-nil slice with a non-nil one holding only the
// non-nil elements, preserving order.
func compact[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
