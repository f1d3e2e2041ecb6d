package ratelimiter

import (
	"math"
	"net/http"
	"sync"
	"time"
)

const defaultSourceKey = "X-RateLimit-Key"

type Limiter interface {
	Allow(sourceKey string) bool
	Remaining(sourceKey string) int
	GetSourceKey(r *http.Request) string
	GetMaxBurst() int
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// RateLimiter is a per-source token bucket. Buckets idle past the TTL are
// swept so the map stays bounded.
type RateLimiter struct {
	ratePerSecond   float64
	maxBurst        int
	ttl             time.Duration
	sourceHeaderKey string

	mu      sync.Mutex
	buckets map[string]*bucket
}

type Options struct {
	MaxRatePerSecond int
	MaxBurst         int
	CacheTTL         time.Duration
	SourceHeaderKey  string
}

func New(options Options) Limiter {
	if options.CacheTTL == 0 {
		options.CacheTTL = 5 * time.Minute
	}
	if options.MaxBurst <= 0 {
		options.MaxBurst = options.MaxRatePerSecond
	}
	if options.SourceHeaderKey == "" {
		options.SourceHeaderKey = defaultSourceKey
	}

	rl := &RateLimiter{
		ratePerSecond:   float64(options.MaxRatePerSecond),
		maxBurst:        options.MaxBurst,
		ttl:             options.CacheTTL,
		sourceHeaderKey: options.SourceHeaderKey,
		buckets:         make(map[string]*bucket),
	}

	go rl.sweep()

	return rl
}

func (rl *RateLimiter) refill(b *bucket, now time.Time) {
	elapsed := now.Sub(b.lastFill).Seconds()
	if elapsed <= 0 {
		return
	}

	b.tokens = math.Min(b.tokens+elapsed*rl.ratePerSecond, float64(rl.maxBurst))
	b.lastFill = now
}

func (rl *RateLimiter) bucketFor(sourceKey string, now time.Time) *bucket {
	b, ok := rl.buckets[sourceKey]
	if !ok {
		b = &bucket{tokens: float64(rl.maxBurst), lastFill: now}
		rl.buckets[sourceKey] = b
	}
	return b
}

func (rl *RateLimiter) Allow(sourceKey string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b := rl.bucketFor(sourceKey, now)
	rl.refill(b, now)

	if b.tokens < 1 {
		return false
	}

	b.tokens--
	return true
}

func (rl *RateLimiter) Remaining(sourceKey string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b := rl.bucketFor(sourceKey, now)
	rl.refill(b, now)

	return int(b.tokens)
}

func (rl *RateLimiter) GetMaxBurst() int {
	return rl.maxBurst
}

func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	if key := r.Header.Get(rl.sourceHeaderKey); key != "" {
		return key
	}

	// Fall back to IP address
	return r.RemoteAddr
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-rl.ttl)

		rl.mu.Lock()
		for key, b := range rl.buckets {
			if b.lastFill.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
