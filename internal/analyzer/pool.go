package analyzer

import (
	"context"
	"fmt"

	"github.com/AdrianWangs/go-hstring/internal/consistenthash"
	"github.com/AdrianWangs/go-hstring/pkg/logger"
)

const defaultReplicas = 50

// Pool spreads texts over several analyzers by consistent hashing. Each shard
// owns its cache and lock; a given text always lands on the same shard.
type Pool struct {
	name   string
	ring   *consistenthash.Map
	shards map[string]*Analyzer
	order  []string
}

// NewPool creates n shards sharing cacheBytes evenly. n < 1 is treated as 1.
func NewPool(name string, n int, cacheBytes int64, opts ...Option) *Pool {
	n = max(n, 1)
	p := &Pool{
		name:   name,
		ring:   consistenthash.New(defaultReplicas, nil),
		shards: make(map[string]*Analyzer, n),
	}
	for i := 0; i < n; i++ {
		shard := fmt.Sprintf("%s-%d", name, i)
		p.shards[shard] = New(shard, cacheBytes/int64(n), opts...)
		p.order = append(p.order, shard)
	}
	p.ring.Add(p.order...)
	logger.Infof("Created analyzer pool: %s, shards: %d", name, n)
	return p
}

// Name returns the pool name
func (p *Pool) Name() string {
	return p.name
}

// Shard returns the analyzer responsible for text
func (p *Pool) Shard(text []byte) *Analyzer {
	return p.shards[p.ring.Get(text)]
}

// Analyze routes text to its shard
func (p *Pool) Analyze(ctx context.Context, text []byte) (*Report, error) {
	return p.Shard(text).Analyze(ctx, text)
}

// AnalyzeBatch is Analyzer.AnalyzeBatch across shards
func (p *Pool) AnalyzeBatch(ctx context.Context, texts [][]byte, limit int) ([]*Report, error) {
	return analyzeBatch(ctx, p.Analyze, texts, limit)
}

// Stats sums the shard counters
func (p *Pool) Stats() Stats {
	var total Stats
	for _, a := range p.shards {
		s := a.Stats()
		total.Gets += s.Gets
		total.Hits += s.Hits
		total.Loads += s.Loads
		total.Shared += s.Shared
	}
	return total
}

// Cached returns the number of cached reports over all shards
func (p *Pool) Cached() int {
	n := 0
	for _, a := range p.shards {
		n += a.Cached()
	}
	return n
}

// CachedBytes returns the accounted cache size over all shards
func (p *Pool) CachedBytes() int64 {
	var n int64
	for _, a := range p.shards {
		n += a.CachedBytes()
	}
	return n
}

// Clear drops every shard's cache
func (p *Pool) Clear() {
	for _, shard := range p.order {
		p.shards[shard].Clear()
	}
}
