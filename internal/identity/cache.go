// Package identity is the process-wide cache of user identities. Entities
// reference their creators inconsistently (embedded, by name, or not at
// all); this cache opportunistically harvests embedded records from
// response graphs and resolves the remainder through deduplicated, batched
// remote lookups so round-trips stay bounded by the number of distinct
// unknown references, not the number of entities.
package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/loqui/loqui-go/internal/types"
)

// DefaultBatchSize bounds how many ids or names one remote lookup carries.
const DefaultBatchSize = 48

// Resolver performs the remote lookups. Both batched calls must return
// results positionally: result[i] answers input[i].
type Resolver interface {
	UsersByID(ctx context.Context, ids []string) ([]*types.User, error)
	IDsByName(ctx context.Context, names []string) ([]string, error)
	UserByName(ctx context.Context, name string) (*types.User, error)
}

// Cache is safe for concurrent use. Entries live for the process lifetime;
// they are only added or overwritten with a confirmed resolution, never
// removed.
type Cache struct {
	res       Resolver
	batchSize int

	mu       sync.Mutex
	byID     map[string]*types.User // normalized id → record (nil = known-unresolvable)
	idByName map[string]string      // lowercased name → normalized id ("" = known-unresolvable)
}

// New constructs a Cache. batchSize <= 0 selects DefaultBatchSize.
func New(res Resolver, batchSize int) *Cache {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Cache{
		res:       res,
		batchSize: batchSize,
		byID:      make(map[string]*types.User),
		idByName:  make(map[string]string),
	}
}

// NormalizeID folds an id to its canonical cache key: lowercased, with
// separator characters and the urn prefix stripped, so visually distinct
// renderings of one UUID collide to a single slot.
func NormalizeID(id string) string {
	id = strings.ToLower(id)
	id = strings.TrimPrefix(id, "urn:uuid:")
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '{', '}', ' ':
			return -1
		}
		return r
	}, id)
}

func normalizeName(name string) string { return strings.ToLower(name) }

// Record upserts u into both tables. It is a no-op when u or its id is
// absent. Last write wins.
func (c *Cache) Record(u *types.User) {
	if u == nil || u.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recordLocked(u)
}

func (c *Cache) recordLocked(u *types.User) {
	c.byID[NormalizeID(u.ID)] = u
	if u.Name != "" {
		c.idByName[normalizeName(u.Name)] = NormalizeID(u.ID)
	}
}

// ByID returns the cached record for id, if any.
func (c *Cache) ByID(id string) (*types.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.byID[NormalizeID(id)]
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

// IDByName returns the cached id for a display name, if any.
func (c *Cache) IDByName(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.idByName[normalizeName(name)]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ByName returns the identity for a display name, from cache when possible,
// otherwise via one dedicated remote lookup whose result is recorded in
// both tables. A nil record with a nil error means the server has no such
// user.
func (c *Cache) ByName(ctx context.Context, name string) (*types.User, error) {
	key := normalizeName(name)

	c.mu.Lock()
	if id, ok := c.idByName[key]; ok {
		u := c.byID[id] // may be nil when only the name→id edge is known
		c.mu.Unlock()
		if u != nil || id == "" {
			return u, nil
		}
	} else {
		c.mu.Unlock()
	}

	u, err := c.res.UserByName(ctx, name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if u == nil {
		// Cache the miss so the name is not re-queried this session.
		c.idByName[key] = ""
		return nil, nil
	}
	c.recordLocked(u)
	return u, nil
}

// ResolveNames resolves the subset of names not already cached, in batches.
// Unresolvable names are cached with an empty id. Already-resolved batches
// stay cached when a later batch fails; resolution is not transactional.
func (c *Cache) ResolveNames(ctx context.Context, names []string) error {
	pending := c.missingNames(names)
	for start := 0; start < len(pending); start += c.batchSize {
		batch := pending[start:min(start+c.batchSize, len(pending))]
		batchCallsTotal.WithLabelValues("names").Inc()
		ids, err := c.res.IDsByName(ctx, batch)
		if err != nil {
			return err
		}
		if len(ids) != len(batch) {
			return fmt.Errorf("identity: name batch of %d answered with %d ids", len(batch), len(ids))
		}
		c.mu.Lock()
		for i, name := range batch {
			c.idByName[name] = NormalizeID(ids[i])
		}
		c.mu.Unlock()
	}
	return nil
}

// ResolveIDs resolves the subset of ids not already cached, in batches.
// An id the server returns no record for is cached as unresolvable.
func (c *Cache) ResolveIDs(ctx context.Context, ids []string) error {
	pending := c.missingIDs(ids)
	for start := 0; start < len(pending); start += c.batchSize {
		batch := pending[start:min(start+c.batchSize, len(pending))]
		batchCallsTotal.WithLabelValues("ids").Inc()
		users, err := c.res.UsersByID(ctx, batch)
		if err != nil {
			return err
		}
		if len(users) != len(batch) {
			return fmt.Errorf("identity: id batch of %d answered with %d records", len(batch), len(users))
		}
		c.mu.Lock()
		for i, id := range batch {
			if users[i] != nil {
				c.recordLocked(users[i])
			} else {
				c.byID[id] = nil
			}
		}
		c.mu.Unlock()
	}
	return nil
}

// missingNames lowercases, dedups, and drops names already present in the
// name table, preserving first-seen order.
func (c *Cache) missingNames(names []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		key := normalizeName(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := c.idByName[key]; ok {
			continue
		}
		out = append(out, key)
	}
	return out
}

// missingIDs normalizes, dedups, and drops ids already present in the id
// table, preserving first-seen order.
func (c *Cache) missingIDs(ids []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		key := NormalizeID(id)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := c.byID[key]; ok {
			continue
		}
		out = append(out, key)
	}
	return out
}
