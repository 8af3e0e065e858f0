package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket owned by one identity.
type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
	expiry     *time.Timer
}

// UserRateLimiter keeps one token bucket per identity (user id, ip, "global").
// Idle buckets are dropped after expirationTime.
type UserRateLimiter struct {
	mu             sync.Mutex
	buckets        map[string]*bucket
	rate           float64 // tokens per second
	capacity       float64
	expirationTime time.Duration
}

func New(rate float64, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

// Presets used by the router
func Rps100() *UserRateLimiter       { return New(100, 100, time.Hour) }
func Rps10() *UserRateLimiter        { return New(10, 10, time.Hour) }
func OnceInSecond() *UserRateLimiter { return New(1, 1, time.Hour) }

func (l *UserRateLimiter) getBucket(identity string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: time.Now()}
		l.buckets[identity] = b
		b.expiry = time.AfterFunc(l.expirationTime, func() { l.drop(identity, b) })
		return b
	}
	b.expiry.Reset(l.expirationTime)
	return b
}

func (l *UserRateLimiter) drop(identity string, b *bucket) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buckets[identity] == b {
		delete(l.buckets, identity)
	}
}

// Allow takes a token from identity's bucket, false when the bucket is empty.
func (l *UserRateLimiter) Allow(identity string) bool {
	b := l.getBucket(identity)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Stop cancels expiry timers of all buckets.
func (l *UserRateLimiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.buckets {
		b.expiry.Stop()
	}
}
