package manifest

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/leapstack-labs/pkgmanifest/internal/tree"
	"github.com/leapstack-labs/pkgmanifest/pkg/core"
)

// DefaultCacheSize is the number of compiled manifests a Cache keeps.
const DefaultCacheSize = 128

// Cache memoizes successful compilations by document content. Every entry is
// compiled with the options the cache was created with. Safe for concurrent use.
type Cache struct {
	opts    []Option
	entries *lru.Cache[string, *core.Manifest]
}

// NewCache creates a cache holding up to size manifests.
func NewCache(size int, opts ...Option) (*Cache, error) {
	entries, err := lru.New[string, *core.Manifest](size)
	if err != nil {
		return nil, err
	}
	return &Cache{opts: opts, entries: entries}, nil
}

// Load reads path and compiles it unless a document with identical content
// was compiled before. hit reports whether the manifest came from the cache.
// Failed compilations are not cached.
func (c *Cache) Load(path string) (m *core.Manifest, hit bool, err error) {
	opts, err := withPathFormat(path, c.opts)
	if err != nil {
		return nil, false, err
	}

	data, err := readManifest(path)
	if err != nil {
		return nil, false, err
	}

	key := cacheKey(newOptions(opts).format, data)
	if m, ok := c.entries.Get(key); ok {
		return m, true, nil
	}

	m, err = compileFile(path, data, opts)
	if err != nil {
		return nil, false, err
	}
	c.entries.Add(key, m)
	return m, false, nil
}

// Len returns the number of cached manifests.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func cacheKey(format tree.Format, data []byte) string {
	sum := sha256.Sum256(data)
	return string(format) + ":" + hex.EncodeToString(sum[:])
}
