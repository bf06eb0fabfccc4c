// Package consistenthash places keys on a ring of named shards
package consistenthash

import (
	"hash/crc32"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/AdrianWangs/go-hstring/pkg/logger"
)

// Hash maps bytes to uint32
type Hash func(data []byte) uint32

// Map is a thread-safe consistent hash ring
type Map struct {
	mutex    sync.RWMutex
	hash     Hash              // hash function
	replicas int               // virtual nodes per shard
	keys     []uint32          // sorted ring positions
	ring     map[uint32]string // ring position -> shard
}

// New creates a ring with the given replicas count. A nil fn means CRC32.
func New(replicas int, fn Hash) *Map {
	if replicas < 1 {
		replicas = 1
	}
	m := &Map{
		replicas: replicas,
		hash:     fn,
		ring:     make(map[uint32]string),
	}
	if m.hash == nil {
		m.hash = crc32.ChecksumIEEE
	}
	return m
}

// Add 往哈希环中添加分片
func (m *Map) Add(shards ...string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, shard := range shards {
		for i := 0; i < m.replicas; i++ {
			h := m.hash([]byte(strconv.Itoa(i) + shard))
			if _, taken := m.ring[h]; !taken {
				m.keys = append(m.keys, h)
			}
			m.ring[h] = shard
		}
	}
	slices.Sort(m.keys)
}

// Get returns the shard owning key, or "" when the ring is empty
func (m *Map) Get(key []byte) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if len(m.keys) == 0 {
		return ""
	}

	h := m.hash(key)
	// first position clockwise from h, wrapping to the start
	idx := sort.Search(len(m.keys), func(i int) bool {
		return m.keys[i] >= h
	})
	if idx == len(m.keys) {
		idx = 0
	}

	shard := m.ring[m.keys[idx]]
	logger.Debugf("一致性哈希: hash=%d, 选中分片=%s", h, shard)
	return shard
}

// Len returns the number of ring positions
func (m *Map) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.keys)
}
