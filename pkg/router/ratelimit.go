package router

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = time.Minute
	limiterStaleAfter      = 10 * time.Minute
)

// ipLimiter 单个客户端IP的限流器
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter 按客户端IP限流
type rateLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*ipLimiter
	rate        rate.Limit
	burst       int
	lastCleanup time.Time
	now         func() time.Time
}

func newRateLimiter(r rate.Limit, burst int) *rateLimiter {
	return &rateLimiter{
		limiters:    make(map[string]*ipLimiter),
		rate:        r,
		burst:       burst,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// getLimiter returns the limiter for ip, creating one if needed. Stale
// entries are evicted at most once per limiterCleanupInterval.
func (rl *rateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastCleanup) >= limiterCleanupInterval {
		rl.cleanup(now.Add(-limiterStaleAfter))
		rl.lastCleanup = now
	}

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// cleanup removes entries not seen since cutoff. Caller holds mu.
func (rl *rateLimiter) cleanup(cutoff time.Time) {
	for ip, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}

// RateLimitMiddleware 按客户端IP限制每秒请求数, perSecond <= 0 时不限制
func RateLimitMiddleware(perSecond float64, burst int) MiddlewareFunc {
	return func(next Handler) Handler {
		if perSecond <= 0 {
			return next
		}
		if burst < 1 {
			burst = 1
		}
		rl := newRateLimiter(rate.Limit(perSecond), burst)
		return HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			if ip == "" {
				ip = r.RemoteAddr
			}

			if !rl.getLimiter(ip).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
