package identity

import "github.com/loqui/loqui-go/internal/types"

// Harvest walks a normalized entity graph and records every embedded
// identity it finds. This is how the cache warms opportunistically: most
// identities arrive embedded somewhere before anything needs to look them
// up. root may be any entity, pointer-to-entity slice, or nil.
func (c *Cache) Harvest(root any) {
	w := &walker{cache: c, seen: make(map[any]struct{})}
	w.walk(root)
}

type walker struct {
	cache *Cache
	seen  map[any]struct{}
}

func (w *walker) visited(node any) bool {
	if _, ok := w.seen[node]; ok {
		return true
	}
	w.seen[node] = struct{}{}
	return false
}

func (w *walker) walk(root any) {
	switch x := root.(type) {
	case nil:
	case *types.User:
		w.user(x)
	case *types.Category:
		w.category(x)
	case []*types.Category:
		for _, c := range x {
			w.category(c)
		}
	case *types.Tag:
		w.tag(x)
	case []*types.Tag:
		for _, t := range x {
			w.tag(t)
		}
	case *types.Thread:
		w.thread(x)
	case []*types.Thread:
		for _, t := range x {
			w.thread(t)
		}
	case *types.Message:
		w.message(x)
	case []*types.Message:
		for _, m := range x {
			w.message(m)
		}
	case *types.Comment:
		w.comment(x)
	case []*types.Comment:
		for _, c := range x {
			w.comment(c)
		}
	case *types.PrivateMessage:
		w.privateMessage(x)
	case []*types.PrivateMessage:
		for _, pm := range x {
			w.privateMessage(pm)
		}
	case *types.Attachment:
		w.attachment(x)
	case []*types.Attachment:
		for _, a := range x {
			w.attachment(a)
		}
	}
}

// user records u. The hydration placeholder is skipped: it stands in for
// an omitted creator and is not a resolved account, so letting it into the
// tables would shadow a real user displayed as "Unknown".
func (w *walker) user(u *types.User) {
	if u.IsUnknown() {
		return
	}
	w.cache.Record(u)
}

func (w *walker) category(c *types.Category) {
	if c == nil || w.visited(c) {
		return
	}
	for _, child := range c.Children {
		w.category(child)
	}
	w.category(c.Parent)
	for _, t := range c.Tags {
		w.tag(t)
	}
	w.user(c.CreatedBy)
}

func (w *walker) tag(t *types.Tag) {
	if t == nil || w.visited(t) {
		return
	}
	for _, c := range t.Categories {
		w.category(c)
	}
	w.user(t.CreatedBy)
}

func (w *walker) thread(t *types.Thread) {
	if t == nil || w.visited(t) {
		return
	}
	for _, c := range t.Categories {
		w.category(c)
	}
	for _, tag := range t.Tags {
		w.tag(tag)
	}
	w.message(t.LatestMessage)
	w.user(t.CreatedBy)
}

func (w *walker) message(m *types.Message) {
	if m == nil || w.visited(m) {
		return
	}
	w.thread(m.Thread)
	for _, a := range m.Attachments {
		w.attachment(a)
	}
	for _, c := range m.Comments {
		w.comment(c)
	}
	w.user(m.CreatedBy)
}

func (w *walker) comment(c *types.Comment) {
	if c == nil || w.visited(c) {
		return
	}
	w.message(c.Message)
	w.user(c.CreatedBy)
}

func (w *walker) privateMessage(pm *types.PrivateMessage) {
	if pm == nil || w.visited(pm) {
		return
	}
	for _, a := range pm.Attachments {
		w.attachment(a)
	}
	w.user(pm.From)
	w.user(pm.To)
}

func (w *walker) attachment(a *types.Attachment) {
	if a == nil || w.visited(a) {
		return
	}
	w.user(a.CreatedBy)
}
