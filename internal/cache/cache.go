package cache

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTTL is the fallback entry lifetime when the caller passes a
// non-positive duration.
const DefaultTTL = 300 * time.Second

// Key identifies one cached computation. Distinct params must map to distinct
// entries: a 5d history and a 1mo history for the same pair are different data.
type Key struct {
	Op    string
	Pair  string
	Param string
}

func (k Key) String() string {
	return fmt.Sprintf("%s_%s_%s", k.Op, k.Pair, k.Param)
}

type entry struct {
	value    any
	insertAt time.Time
}

// Cache is a TTL-gated key-value store in front of the data provider.
// Staleness is checked at read time only; expired entries are overwritten in
// place, never swept by a background goroutine.
type Cache struct {
	mu   sync.Mutex
	data map[Key]*entry
	now  func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		data: make(map[Key]*entry),
		now:  time.Now,
	}
}

// GetOrCompute returns the cached value for key when it is younger than ttl,
// otherwise invokes compute, stores its result and returns it. A failed
// compute leaves the cache unchanged and the error propagates.
//
// The lock is held across compute, so concurrent callers of the same expired
// key never trigger duplicate fetches. With a key space of seven pairs times a
// handful of operations, the contention this costs is negligible.
func (c *Cache) GetOrCompute(key Key, ttl time.Duration, compute func() (any, error)) (any, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.data[key]; ok && c.now().Sub(e.insertAt) < ttl {
		return e.value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.data[key] = &entry{value: value, insertAt: c.now()}
	return value, nil
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[Key]*entry)
}

// Len reports how many entries are stored, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
