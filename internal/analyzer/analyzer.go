// Package analyzer computes word statistics over text and caches the results
package analyzer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AdrianWangs/go-hstring/internal/singleflight"
	"github.com/AdrianWangs/go-hstring/pkg/hstring"
	"github.com/AdrianWangs/go-hstring/pkg/logger"
	"github.com/AdrianWangs/go-hstring/pkg/lru"
)

// Stats 分析统计信息
type Stats struct {
	Gets   int64 `json:"gets"`   // Analyze 调用总数
	Hits   int64 `json:"hits"`   // 缓存命中次数
	Loads  int64 `json:"loads"`  // 实际执行分析的次数
	Shared int64 `json:"shared"` // 与并发请求共享结果的次数
}

// Analyzer is a named, cached word analyzer. It is safe for concurrent use.
type Analyzer struct {
	name     string
	cache    *lru.Cache[*Report]
	loader   singleflight.Group[*Report]
	ttl      time.Duration
	maxInput int

	gets, hits, loads, shared atomic.Int64
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithTTL sets how long a report stays cached; 0 keeps it until evicted
func WithTTL(ttl time.Duration) Option {
	return func(a *Analyzer) {
		a.ttl = ttl
	}
}

// WithMaxInput rejects texts longer than n bytes; 0 disables the limit
func WithMaxInput(n int) Option {
	return func(a *Analyzer) {
		a.maxInput = n
	}
}

// New creates an analyzer whose cache holds at most cacheBytes (0 = unbounded)
func New(name string, cacheBytes int64, opts ...Option) *Analyzer {
	a := &Analyzer{
		name:  name,
		cache: lru.New[*Report](cacheBytes, nil),
	}
	for _, opt := range opts {
		opt(a)
	}
	logger.Infof("Created analyzer: %s, cache: %d bytes, ttl: %v", name, cacheBytes, a.ttl)
	return a
}

// Name returns the analyzer name
func (a *Analyzer) Name() string {
	return a.name
}

// Analyze returns the word report for text, from cache when possible.
// Concurrent calls for the same text share a single computation.
func (a *Analyzer) Analyze(ctx context.Context, text []byte) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.gets.Add(1)
	if a.maxInput > 0 && len(text) > a.maxInput {
		return nil, WrapError(ErrTypeInputTooLarge, "input too large",
			fmt.Errorf("%d bytes exceeds limit of %d", len(text), a.maxInput))
	}

	key := string(text)
	if r, ok := a.cache.Get(key); ok {
		a.hits.Add(1)
		logger.Debugf("[Analyzer] HIT - analyzer:%s report:%s", a.name, r.ID)
		return r, nil
	}

	logger.Debugf("[Analyzer] MISS - analyzer:%s bytes:%d", a.name, len(text))
	r, err, shared := a.loader.DoContext(ctx, key, func() (*Report, error) {
		return a.load(key)
	})
	if shared {
		a.shared.Add(1)
	}
	return r, err
}

// AnalyzeBatch analyzes texts with at most limit running at once (limit <= 0
// means no limit). Reports keep the order of texts; the first error cancels
// the rest.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts [][]byte, limit int) ([]*Report, error) {
	return analyzeBatch(ctx, a.Analyze, texts, limit)
}

func analyzeBatch(ctx context.Context, analyze func(context.Context, []byte) (*Report, error), texts [][]byte, limit int) ([]*Report, error) {
	reports := make([]*Report, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, text := range texts {
		g.Go(func() error {
			r, err := analyze(gctx, text)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// load runs the analysis and populates the cache
func (a *Analyzer) load(key string) (*Report, error) {
	a.loads.Add(1)

	text := hstring.FromString(key)
	trimmed := text.Clone()
	trimmed.Trim()
	if trimmed.IsEmpty() {
		return nil, ErrEmptyInput
	}

	r := buildReport(uuid.NewString(), &text)
	a.cache.Add(key, r, a.ttl)
	logger.WithFields(logger.Fields{
		"analyzer": a.name,
		"report":   r.ID,
		"words":    r.Total,
		"distinct": len(r.Words),
	}).Info("[Analyzer] 已缓存分析结果")
	return r, nil
}

// Stats returns a snapshot of the counters
func (a *Analyzer) Stats() Stats {
	return Stats{
		Gets:   a.gets.Load(),
		Hits:   a.hits.Load(),
		Loads:  a.loads.Load(),
		Shared: a.shared.Load(),
	}
}

// Cached returns the number of cached reports
func (a *Analyzer) Cached() int {
	return a.cache.Len()
}

// CachedBytes returns the accounted size of the cached reports
func (a *Analyzer) CachedBytes() int64 {
	return a.cache.Bytes()
}

// Clear drops every cached report
func (a *Analyzer) Clear() {
	a.cache.Clear()
	logger.Infof("Cleared cache for analyzer: %s", a.name)
}
