package workspace

import (
	"github.com/arthur-debert/pkgbundle/pkg/errors"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps recently built descriptors, keyed by package root.
//
// Packages without an entry point are cached as nil so they are not rebuilt.
// Failed builds are not cached.
type Cache struct {
	source Source
	items  *lru.Cache[string, *packages.Descriptor]
}

// NewCache wraps source with a cache holding at most size descriptors.
func NewCache(source Source, size int) (*Cache, error) {
	items, err := lru.New[string, *packages.Descriptor](size)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid cache size %d", size)
	}
	return &Cache{source: source, items: items}, nil
}

// Build returns the cached descriptor for location, building it on a miss.
func (c *Cache) Build(location string) (*packages.Descriptor, error) {
	root, err := packages.RootAt(location)
	if err != nil {
		return nil, err
	}

	if desc, ok := c.items.Get(root); ok {
		return desc, nil
	}

	desc, err := c.source.Build(root)
	if err != nil {
		return nil, err
	}
	c.items.Add(root, desc)
	return desc, nil
}

// Invalidate drops the descriptor for root.
func (c *Cache) Invalidate(root string) {
	c.items.Remove(root)
}

// Len is the number of cached descriptors.
func (c *Cache) Len() int {
	return c.items.Len()
}
