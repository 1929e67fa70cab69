package profile

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/mitchellh/hashstructure/v2"
	"golang.org/x/sync/singleflight"

	"deviceprofile/device"
	"deviceprofile/flags"
	"deviceprofile/grid"
)

// cacheKey is the hashed form of Inputs. Flags are resolved to their values
// so two providers that agree share an entry.
type cacheKey struct {
	Metrics     device.ScreenMetrics
	Grid        *grid.Spec
	Preferences Preferences
	Flags       map[string]bool
}

// Key returns a structural hash of the inputs. Equal inputs always give the
// same key.
func Key(in Inputs) (uint64, error) {
	k := cacheKey{
		Metrics:     in.Metrics,
		Grid:        in.Grid,
		Preferences: in.Preferences,
		Flags:       flags.Snapshot(in.Flags),
	}
	h, err := hashstructure.Hash(k, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to hash profile inputs: %w", err)
	}
	return h, nil
}

// CacheStats counts cache lookups.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Cache memoizes builds by input. Concurrent misses for the same inputs
// share one build. Cached profiles are shared between callers and must not
// be modified.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]*Profile
	group   singleflight.Group
	hits    int64
	misses  int64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]*Profile)}
}

// Get returns the profile for in, building it on a miss. Build errors are
// not cached.
func (c *Cache) Get(in Inputs) (*Profile, error) {
	key, err := Key(in)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if p, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return p, nil
	}
	c.misses++
	c.mu.Unlock()

	v, err, _ := c.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		c.mu.Lock()
		p, ok := c.entries[key]
		c.mu.Unlock()
		if ok {
			return p, nil
		}
		p, err := New(in)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Profile), nil
}

// Stats returns the lookup counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Size: len(c.entries)}
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*Profile)
}
