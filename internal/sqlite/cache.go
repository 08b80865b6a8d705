package sqlite

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mesh-intelligence/shrub/pkg/types"
)

// prototypeCache keeps loaded item types resident so that items loaded while
// their type is cached share one *types.ItemType.
type prototypeCache struct {
	lru *lru.Cache[string, *types.ItemType]
}

func newPrototypeCache(size int, log *slog.Logger) (*prototypeCache, error) {
	c, err := lru.NewWithEvict(size, func(id string, t *types.ItemType) {
		log.Debug("item type evicted", "type_id", id, "name", t.Name())
	})
	if err != nil {
		return nil, err
	}
	return &prototypeCache{lru: c}, nil
}

// Get returns the resident prototype for id.
func (c *prototypeCache) Get(id string) (*types.ItemType, bool) {
	return c.lru.Get(id)
}

// Canonical stores t unless a prototype with the same ID is already resident,
// and returns whichever one is resident afterwards.
func (c *prototypeCache) Canonical(t *types.ItemType) *types.ItemType {
	if prev, ok, _ := c.lru.PeekOrAdd(t.ID(), t); ok {
		return prev
	}
	return t
}

// Put makes t the resident prototype for its ID.
func (c *prototypeCache) Put(t *types.ItemType) {
	c.lru.Add(t.ID(), t)
}

// Invalidate drops id from the cache.
func (c *prototypeCache) Invalidate(id string) {
	c.lru.Remove(id)
}

// Len returns the number of resident prototypes.
func (c *prototypeCache) Len() int {
	return c.lru.Len()
}

// Clear removes all entries.
func (c *prototypeCache) Clear() {
	c.lru.Purge()
}
