package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a thread-safe, size-bounded LRU cache with optional expiry,
// keyed by content Key. The explorer memoizes renderings in it and
// MemoryStore keeps its entries in it.
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[Key]*list.Element
	order    *list.List // front is most recently used
	maxItems int
	ttl      time.Duration
	done     chan struct{}
	stopOnce sync.Once

	hits   int64
	misses int64
}

type item[V any] struct {
	key     Key
	value   V
	expires time.Time // zero never expires
}

func (i *item[V]) expired(now time.Time) bool {
	return !i.expires.IsZero() && now.After(i.expires)
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	// TTL for Set; a negative TTL keeps items until evicted
	TTL             time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems:        1000,
		TTL:             10 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// Counters reports cache effectiveness
type Counters struct {
	Entries int
	Hits    int64
	Misses  int64
}

// HitRate returns hits as a percentage of lookups
func (c Counters) HitRate() float64 {
	total := c.Hits + c.Misses
	if total == 0 {
		return 0
	}
	return float64(c.Hits) / float64(total) * 100
}

// New creates a new cache. Call Close to stop the cleanup goroutine.
func New[V any](cfg Config) *Cache[V] {
	def := DefaultConfig()
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = def.MaxItems
	}
	if cfg.TTL == 0 {
		cfg.TTL = def.TTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}

	c := &Cache[V]{
		items:    make(map[Key]*list.Element),
		order:    list.New(),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		done:     make(chan struct{}),
	}
	go c.cleanupLoop(cfg.CleanupInterval)
	return c
}

// Get returns the value for key and marks it recently used
func (c *Cache[V]) Get(key Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}

	it := el.Value.(*item[V])
	if it.expired(time.Now()) {
		c.remove(el)
		c.misses++
		return zero, false
	}

	c.order.MoveToFront(el)
	c.hits++
	return it.value, true
}

// Set stores a value with the configured TTL
func (c *Cache[V]) Set(key Key, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value; ttl <= 0 never expires. The least recently
// used item is evicted when the cache is full.
func (c *Cache[V]) SetWithTTL(key Key, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	if el, ok := c.items[key]; ok {
		it := el.Value.(*item[V])
		it.value, it.expires = value, expires
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxItems {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
	c.items[key] = c.order.PushFront(&item[V]{key: key, value: value, expires: expires})
}

// GetOrCompute returns the cached value for key, or computes and stores
// it. Errors are not cached.
func (c *Cache[V]) GetOrCompute(key Key, fn func() (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	v, err := fn()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Set(key, v)
	return v, false, nil
}

// Delete removes key
func (c *Cache[V]) Delete(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.remove(el)
	}
}

// DeleteFunc removes every live item for which fn returns true and
// reports how many were removed
func (c *Cache[V]) DeleteFunc(fn func(Key, V) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		it := el.Value.(*item[V])
		if fn(it.key, it.value) {
			c.remove(el)
			n++
		}
		el = next
	}
	return n
}

// Range calls fn for each unexpired item from most to least recently used
// until fn returns false. fn must not call back into the cache.
func (c *Cache[V]) Range(fn func(Key, V) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for el := c.order.Front(); el != nil; el = el.Next() {
		it := el.Value.(*item[V])
		if it.expired(now) {
			continue
		}
		if !fn(it.key, it.value) {
			return
		}
	}
}

// Clear removes all items and returns how many were removed
func (c *Cache[V]) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.order.Len()
	c.items = make(map[Key]*list.Element)
	c.order.Init()
	return n
}

// Len returns the number of items, expired ones not yet cleaned included
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns hit and miss counters
func (c *Cache[V]) Stats() Counters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Counters{Entries: c.order.Len(), Hits: c.hits, Misses: c.misses}
}

// Close stops the cleanup goroutine. The cache stays usable.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.done) })
}

// remove unlinks el; the lock must be held
func (c *Cache[V]) remove(el *list.Element) {
	delete(c.items, el.Value.(*item[V]).key)
	c.order.Remove(el)
}

func (c *Cache[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

// cleanup removes expired items
func (c *Cache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*item[V]).expired(now) {
			c.remove(el)
		}
		el = next
	}
}
