package layout

import (
	"github.com/kode4food/lru"

	"github.com/flowboard/engine/pkg/api"
)

// Cache memoizes layout results keyed by the structural hash of the
// step list. Compute is pure, so a hit is always safe to share; callers
// must treat cached layouts as read-only
type Cache struct {
	cache *lru.Cache[*api.Layout]
}

// NewCache creates a layout memo cache with the specified maximum size
func NewCache(maxSize int) *Cache {
	return &Cache{
		cache: lru.NewCache[*api.Layout](maxSize),
	}
}

// Compute returns the memoized layout for the step list, computing and
// storing it on a miss. Steps that cannot be hashed fall back to a
// direct computation
func (c *Cache) Compute(steps []*api.Step) *api.Layout {
	key, err := api.HashSteps(steps)
	if err != nil {
		return Compute(steps)
	}

	result, err := c.cache.Get(key, func() (*api.Layout, error) {
		return Compute(steps), nil
	})
	if err != nil {
		return Compute(steps)
	}
	return result
}
