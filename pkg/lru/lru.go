// Package lru provides a byte-bounded LRU cache with per-entry expiry
package lru

import (
	"container/list"
	"sync"
	"time"

	"github.com/AdrianWangs/go-hstring/pkg/logger"
)

// Value is the interface that all values stored in the cache must implement
type Value interface {
	// Len returns the size of the value in bytes
	Len() int
}

// Cache is a thread-safe LRU cache. Keys and values both count toward maxBytes.
type Cache[V Value] struct {
	mutex     sync.Mutex
	maxBytes  int64                    // maximum memory limit (0 means no limit)
	nbytes    int64                    // current memory usage in bytes
	ll        *list.List               // front = least recently used
	cache     map[string]*list.Element // hashmap for O(1) lookups
	now       func() time.Time
	OnEvicted func(key string, value V)
}

// entry represents a key-value pair stored in the cache
type entry[V Value] struct {
	key   string
	value V
	exp   time.Time // zero means never expires
}

func (e *entry[V]) size() int64 {
	return int64(len(e.key)) + int64(e.value.Len())
}

// New creates a new LRU cache with the specified memory limit and eviction callback
func New[V Value](maxBytes int64, onEvicted func(key string, value V)) *Cache[V] {
	return &Cache[V]{
		maxBytes:  maxBytes,
		ll:        list.New(),
		cache:     make(map[string]*list.Element),
		now:       time.Now,
		OnEvicted: onEvicted,
	}
}

// Get returns the value for key and marks it most recently used. Expired
// entries are dropped on access.
func (c *Cache[V]) Get(key string) (value V, ok bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	ele, ok := c.cache[key]
	if !ok {
		return value, false
	}
	kv := ele.Value.(*entry[V])

	// 过期就删除
	if !kv.exp.IsZero() && !c.now().Before(kv.exp) {
		logger.Debugf("[LRU] 缓存项已过期: key=%q, 过期时间=%v", key, kv.exp.Format(time.RFC3339))
		c.removeElement(ele)
		return value, false
	}

	c.ll.MoveToBack(ele)
	return kv.value, true
}

// Add inserts or replaces key. ttl <= 0 means the entry never expires.
func (c *Cache[V]) Add(key string, value V, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}

	if ele, ok := c.cache[key]; ok {
		c.ll.MoveToBack(ele)
		kv := ele.Value.(*entry[V])
		c.nbytes += int64(value.Len()) - int64(kv.value.Len())
		kv.value = value
		kv.exp = exp
	} else {
		kv := &entry[V]{key: key, value: value, exp: exp}
		c.cache[key] = c.ll.PushBack(kv)
		c.nbytes += kv.size()
	}

	// Evict oldest entries if memory limit exceeded
	for c.maxBytes != 0 && c.nbytes > c.maxBytes && c.ll.Len() > 0 {
		c.removeOldest()
	}
}

// Len returns the number of items in the cache
func (c *Cache[V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.ll.Len()
}

// Bytes returns the accounted size of all entries
func (c *Cache[V]) Bytes() int64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.nbytes
}

// Clear empties the cache without calling OnEvicted
func (c *Cache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.ll = list.New()
	c.cache = make(map[string]*list.Element)
	c.nbytes = 0
}

// removeOldest removes the least recently used item
func (c *Cache[V]) removeOldest() {
	if ele := c.ll.Front(); ele != nil {
		c.removeElement(ele)
	}
}

func (c *Cache[V]) removeElement(ele *list.Element) {
	c.ll.Remove(ele)
	kv := ele.Value.(*entry[V])
	delete(c.cache, kv.key)
	c.nbytes -= kv.size()
	if c.OnEvicted != nil {
		c.OnEvicted(kv.key, kv.value)
	}
}
