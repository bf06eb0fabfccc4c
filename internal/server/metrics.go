package server

import (
	"net/http"
	"runtime"
	"time"
)

// MetricsResponse 系统指标响应
type MetricsResponse struct {
	Uptime       string  `json:"uptime" msgpack:"uptime"`             // 运行时间
	NumGoroutine int     `json:"numGoroutine" msgpack:"numGoroutine"` // goroutine数量
	RequestCount int64   `json:"requestCount" msgpack:"requestCount"` // Analyze 调用次数
	HitCount     int64   `json:"hitCount" msgpack:"hitCount"`         // 缓存命中次数
	MissCount    int64   `json:"missCount" msgpack:"missCount"`       // 缓存未命中次数
	SharedCount  int64   `json:"sharedCount" msgpack:"sharedCount"`   // 并发共享结果次数
	HitRate      float64 `json:"hitRate" msgpack:"hitRate"`           // 缓存命中率(%)
	Cached       int     `json:"cached" msgpack:"cached"`             // 已缓存报告数
	CachedBytes  int64   `json:"cachedBytes" msgpack:"cachedBytes"`   // 缓存占用字节数
}

// handleMetrics 获取系统指标
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	st := s.backend.Stats()

	var hitRate float64
	if st.Gets > 0 {
		hitRate = float64(st.Hits) / float64(st.Gets) * 100
	}

	s.respond(w, r, MetricsResponse{
		Uptime:       time.Since(s.started).Round(time.Second).String(),
		NumGoroutine: runtime.NumGoroutine(),
		RequestCount: st.Gets,
		HitCount:     st.Hits,
		MissCount:    st.Gets - st.Hits,
		SharedCount:  st.Shared,
		HitRate:      hitRate,
		Cached:       s.backend.Cached(),
		CachedBytes:  s.backend.CachedBytes(),
	})
}

// handleClearCache drops every cached report
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.backend.Clear()
	w.WriteHeader(http.StatusNoContent)
}
