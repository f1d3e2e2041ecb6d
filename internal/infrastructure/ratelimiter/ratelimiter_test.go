package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowConsumesBurst(t *testing.T) {
	rl := New(Options{MaxBurst: 3})

	for i := 0; i < 3; i++ {
		if !rl.Allow("client-a") {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}
	if rl.Allow("client-a") {
		t.Fatal("request beyond burst was allowed")
	}
}

func TestSourcesAreIsolated(t *testing.T) {
	rl := New(Options{MaxBurst: 1})

	if !rl.Allow("client-a") {
		t.Fatal("first request for client-a denied")
	}
	if rl.Allow("client-a") {
		t.Fatal("client-a exceeded its burst")
	}
	if !rl.Allow("client-b") {
		t.Fatal("client-b must have its own bucket")
	}
}

func TestRemaining(t *testing.T) {
	rl := New(Options{MaxBurst: 5})

	if got := rl.Remaining("client-a"); got != 5 {
		t.Fatalf("Remaining = %d, want 5", got)
	}

	rl.Allow("client-a")
	rl.Allow("client-a")

	if got := rl.Remaining("client-a"); got != 3 {
		t.Fatalf("Remaining = %d, want 3", got)
	}
}

func TestRefill(t *testing.T) {
	rl := &RateLimiter{
		ratePerSecond: 4,
		maxBurst:      5,
		buckets:       make(map[string]*bucket),
	}

	now := time.Now()
	b := &bucket{tokens: 0, lastFill: now}

	rl.refill(b, now.Add(500*time.Millisecond))
	if b.tokens != 2 {
		t.Fatalf("tokens = %v, want 2", b.tokens)
	}

	// Refill never exceeds the burst ceiling.
	rl.refill(b, now.Add(time.Hour))
	if b.tokens != 5 {
		t.Fatalf("tokens = %v, want capped at 5", b.tokens)
	}
}

func TestGetSourceKey(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 1, SourceHeaderKey: "X-Client-Id"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:55555"

	if got := rl.GetSourceKey(req); got != "10.0.0.1:55555" {
		t.Fatalf("source key = %q, want remote addr fallback", got)
	}

	req.Header.Set("X-Client-Id", "service-42")
	if got := rl.GetSourceKey(req); got != "service-42" {
		t.Fatalf("source key = %q, want header value", got)
	}
}
