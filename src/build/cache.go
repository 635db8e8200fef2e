// CacheStore persists, as one small JSON manifest file per cache key, the
// output paths a rule produced the last time it ran with that fingerprint
// -- letting a later build with an unchanged cache key skip re-running
// the rule entirely.

package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/Reregistered/games-framework/src/fs"
)

// CacheStore is a directory of key.json manifests mapping a rule's cache
// key to the output paths it produced.
type CacheStore struct {
	dir string
	mu  sync.Mutex
}

// NewCacheStore returns a CacheStore rooted at dir, creating it if
// necessary.
func NewCacheStore(dir string) (*CacheStore, error) {
	if err := fs.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &CacheStore{dir: dir}, nil
}

func (c *CacheStore) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get returns the output paths recorded for key, and whether they form a
// usable cache hit. A missing or unreadable manifest, or one naming an
// output path that no longer exists on disk, is treated as a cache miss
// rather than an error -- a corrupt cache entry should never block a
// build, only cost it a rebuild.
func (c *CacheStore) Get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var outputs []string
	if err := json.Unmarshal(data, &outputs); err != nil {
		return nil, false
	}
	for _, o := range outputs {
		if !fs.PathExists(o) {
			return nil, false
		}
	}
	return outputs, true
}

// Set records outputs as the result of running the rule with the given
// cache key.
func (c *CacheStore) Set(key string, outputs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(outputs)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0644)
}
