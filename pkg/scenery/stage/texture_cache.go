package stage

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/veandco/go-sdl2/sdl"
)

const defaultMaxCacheSize = 5

// lruCache keeps the most recently shown scene resources loaded.
// Scenes far back in the deck are evicted, destroyed and reloaded on demand.
type lruCache[V any] struct {
	items *lru.Cache
}

func newLRUCache[V any](maxSize int, destroy func(V)) *lruCache[V] {
	if maxSize <= 0 {
		maxSize = defaultMaxCacheSize
	}
	// NewWithEvict only fails for a non-positive size.
	items, _ := lru.NewWithEvict(maxSize, func(_, value interface{}) {
		destroy(value.(V))
	})
	return &lruCache[V]{items: items}
}

func newTextureCache(maxSize int) *lruCache[*sdl.Texture] {
	return newLRUCache(maxSize, func(t *sdl.Texture) { t.Destroy() })
}

// get returns the value for key, loading and caching it on a miss.
func (c *lruCache[V]) get(key string, load func() (V, error)) (V, error) {
	if v, ok := c.items.Get(key); ok {
		return v.(V), nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	c.items.Add(key, v)
	return v, nil
}

func (c *lruCache[V]) len() int {
	return c.items.Len()
}

// clear destroys every cached value.
func (c *lruCache[V]) clear() {
	c.items.Purge()
}
