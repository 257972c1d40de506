package http

import (
	"sync"
	"time"
)

const (
	visitorStaleAfter = 1 * time.Hour
	evictionInterval  = 30 * time.Minute
)

type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket. Tokens accrue continuously at
// rate/interval rather than in whole-bucket refills, so a client that waits
// half the interval gets half its burst back.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	perSec   float64
	visitors map[string]*visitor
	stop     chan struct{}

	now func() time.Time
}

// NewRateLimiter builds a limiter allowing capacity requests per interval
// from each client, with bursts up to capacity.
func NewRateLimiter(capacity int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: float64(capacity),
		perSec:   float64(capacity) / interval.Seconds(),
		visitors: make(map[string]*visitor),
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go rl.evictLoop()
	return rl
}

func (r *RateLimiter) evictLoop() {
	ticker := time.NewTicker(evictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictStale()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) evictStale() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-visitorStaleAfter)
	for key, v := range r.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(r.visitors, key)
		}
	}
}

func (r *RateLimiter) Stop() {
	close(r.stop)
}

// Allow reports whether the client identified by key may proceed, consuming
// one token when it does.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	v, exists := r.visitors[key]
	if !exists {
		r.visitors[key] = &visitor{tokens: r.capacity - 1, lastSeen: now}
		return true
	}

	elapsed := now.Sub(v.lastSeen).Seconds()
	v.tokens += elapsed * r.perSec
	if v.tokens > r.capacity {
		v.tokens = r.capacity
	}
	v.lastSeen = now

	if v.tokens < 1 {
		return false
	}
	v.tokens--
	return true
}
