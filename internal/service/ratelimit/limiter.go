package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token-bucket rate limiter keyed by vendor/endpoint name.
// The quote service throttles aggressively on its free tier, so the
// client gates every outbound call through one of these.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens   float64
	capacity float64
	perSec   float64
	last     time.Time
}

func New() *Limiter {
	return &Limiter{buckets: make(map[string]*bucket)}
}

// Allow consumes one token for key if available. capacity is the burst
// size, refillPerSec the sustained rate.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, capacity: capacity, perSec: refillPerSec, last: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * b.perSec
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
