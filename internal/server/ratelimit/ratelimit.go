// Package ratelimit throttles preview requests with per-client token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows capacity requests in a burst and refills at a steady
// rate.
type tokenBucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastUsed   time.Time
}

func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
		tb.lastRefill = now
	}
}

// take consumes one token if available.
func (tb *tokenBucket) take(now time.Time) bool {
	tb.refill(now)
	tb.lastUsed = now
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// untilNext is how long until one token is available.
func (tb *tokenBucket) untilNext() time.Duration {
	if tb.tokens >= 1 || tb.refillRate <= 0 {
		return 0
	}
	return time.Duration((1 - tb.tokens) / tb.refillRate * float64(time.Second))
}

// Info describes the outcome of Allow.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter tracks one bucket per client and rule.
type Limiter struct {
	mu      sync.Mutex
	config  Config
	buckets map[string]*tokenBucket
	now     func() time.Time
}

// NewLimiter creates a limiter. A nil clock uses time.Now.
func NewLimiter(config Config, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
		now:     now,
	}
}

// Allow reports whether clientID may make a request to path.
func (l *Limiter) Allow(clientID, method, path string) Info {
	if !l.config.Enabled {
		return Info{Allowed: true}
	}
	rule := Match(method, path, l.config.Rules)
	if rule == nil || rule.Limit <= 0 {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := clientID + " " + rule.Method + " " + rule.Prefix
	bucket, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		bucket = &tokenBucket{
			capacity:   float64(burst),
			refillRate: float64(rule.Limit) / rule.Window.Seconds(),
			tokens:     float64(burst),
			lastRefill: now,
		}
		l.buckets[key] = bucket
	}

	allowed := bucket.take(now)
	info := Info{Allowed: allowed, Limit: rule.Limit, Remaining: int(bucket.tokens)}
	if !allowed {
		info.RetryAfter = bucket.untilNext()
	}
	return info
}

// Prune drops buckets idle for longer than maxIdle and returns how many
// were removed.
func (l *Limiter) Prune(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxIdle)
	removed := 0
	for key, b := range l.buckets {
		if b.lastUsed.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}
