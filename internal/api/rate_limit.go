package api

import (
	"eld-trip-planner/internal/clock"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Clients idle longer than this lose their limiter.
const limiterIdleTTL = 10 * time.Minute

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // Unix nanoseconds
}

// RateLimiter applies a per-client-IP token bucket to the JSON API.
type RateLimiter struct {
	mu        sync.RWMutex
	clients   map[string]*rateLimitClient
	limit     rate.Limit
	burst     int
	perMinute int
	clock     clock.Clock

	// ExemptLoopback skips limiting for loopback clients. The dashboard's
	// own planner calls arrive from loopback on behalf of every user.
	ExemptLoopback bool

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows perMinute requests per client per minute, with the
// whole minute's allowance available as a burst. A zero or negative
// perMinute disables limiting.
func NewRateLimiter(perMinute int, c clock.Clock) *RateLimiter {
	if c == nil {
		c = clock.RealClock{}
	}

	rl := &RateLimiter{
		clients:   make(map[string]*rateLimitClient),
		perMinute: perMinute,
		burst:     perMinute,
		clock:     c,
		stop:      make(chan struct{}),
	}
	if perMinute <= 0 {
		rl.limit = rate.Inf
	} else {
		rl.limit = rate.Every(time.Minute / time.Duration(perMinute))
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.limit == rate.Inf {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if rl.ExemptLoopback && isLoopback(key) {
			next.ServeHTTP(w, r)
			return
		}
		if !rl.limiter(key).AllowN(rl.clock.Now(), 1) {
			retry := int(math.Ceil(60 / float64(rl.perMinute)))
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	now := rl.clock.Now().UnixNano()

	rl.mu.RLock()
	if c, ok := rl.clients[key]; ok {
		c.lastSeen.Store(now)
		rl.mu.RUnlock()
		return c.limiter
	}
	rl.mu.RUnlock()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if c, ok := rl.clients[key]; ok {
		c.lastSeen.Store(now)
		return c.limiter
	}

	c := &rateLimitClient{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	c.lastSeen.Store(now)
	rl.clients[key] = c
	return c.limiter
}

// evictIdle drops limiters not used within limiterIdleTTL.
func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	for key, c := range rl.clients {
		if now.Sub(time.Unix(0, c.lastSeen.Load())) > limiterIdleTTL {
			delete(rl.clients, key)
		}
	}
}

func (rl *RateLimiter) cleanup() {
	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			rl.evictIdle()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the background cleanup. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isLoopback(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
