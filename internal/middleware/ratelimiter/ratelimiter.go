package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for one caller.
type bucket struct {
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	caller     string
	parent     *CallerRateLimiter
}

// CallerRateLimiter manages token buckets for many callers (emails or IPs).
// Idle buckets expire to keep the map bounded.
type CallerRateLimiter struct {
	buckets        map[string]*bucket
	mu             sync.RWMutex
	rate           float64
	capacity       float64
	expirationTime time.Duration
}

func New(rate, capacity float64, expirationTime time.Duration) *CallerRateLimiter {
	return &CallerRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

func (c *CallerRateLimiter) cleanup(caller string) {
	c.mu.Lock()
	delete(c.buckets, caller)
	c.mu.Unlock()
}

func (b *bucket) resetTimer() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.parent.expirationTime, func() {
		b.parent.cleanup(b.caller)
	})
}

func (c *CallerRateLimiter) getBucket(caller string) *bucket {
	c.mu.RLock()
	b, exists := c.buckets[caller]
	c.mu.RUnlock()

	if exists {
		b.resetTimer()
		return b
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	b, exists = c.buckets[caller]
	if exists {
		b.resetTimer()
		return b
	}

	b = &bucket{
		tokens:     c.capacity,
		capacity:   c.capacity,
		rate:       c.rate,
		lastRefill: time.Now(),
		caller:     caller,
		parent:     c,
	}
	c.buckets[caller] = b
	b.resetTimer()

	return b
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()

	b.tokens += elapsed * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Allow reports whether one more request from caller fits its bucket.
func (c *CallerRateLimiter) Allow(caller string) bool {
	return c.getBucket(caller).allow()
}

// Stop cancels all expiration timers.
func (c *CallerRateLimiter) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}

// PerMinute100 matches the upstream deployment: 100 requests per caller per
// minute with burst capacity of the full window.
func PerMinute100() *CallerRateLimiter {
	return New(100.0/60.0, 100, 1*time.Hour)
}
