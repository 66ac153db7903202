package mesh

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of uploaded meshes a Cache keeps before evicting.
const DefaultCacheSize = 32

// Cache keeps recently used uploaded meshes keyed by the parameters they were built from.
// Evicted meshes have their GPU buffers released, so callers must not hold a Mesh from Get across
// a later Get that could evict it.
type Cache struct {
	mu       *sync.Mutex
	uploader Uploader
	meshes   *lru.Cache[string, Mesh]
}

// NewCache creates a Cache that uploads through u and holds at most size meshes.
//
// Parameters:
//   - u: the uploader used on cache misses
//   - size: maximum number of resident meshes, DefaultCacheSize if <= 0
//
// Returns:
//   - *Cache: the new cache
//   - error: if the underlying LRU cannot be created
func NewCache(u Uploader, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	meshes, err := lru.NewWithEvict[string, Mesh](size, func(_ string, m Mesh) {
		m.Release()
	})
	if err != nil {
		return nil, fmt.Errorf("mesh cache: %w", err)
	}
	return &Cache{
		mu:       &sync.Mutex{},
		uploader: u,
		meshes:   meshes,
	}, nil
}

// Get returns the mesh stored under key, building and uploading it with build on a miss.
//
// Parameters:
//   - key: identity of the geometry, e.g. "compass:0.42:1.778"
//   - build: pure builder invoked only on a miss
//
// Returns:
//   - Mesh: the resident mesh
//   - error: if the upload fails; nothing is cached in that case
func (c *Cache) Get(key string, build func() Data) (Mesh, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.meshes.Get(key); ok {
		return m, nil
	}
	m, err := Upload(c.uploader, key, build())
	if err != nil {
		return Mesh{}, err
	}
	c.meshes.Add(key, m)
	return m, nil
}

// Len returns the number of resident meshes.
func (c *Cache) Len() int {
	return c.meshes.Len()
}

// Purge releases every resident mesh.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes.Purge()
}
