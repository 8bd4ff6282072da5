package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("request over limit allowed")
	}
	// Other clients are tracked independently.
	if !rl.allow("5.6.7.8") {
		t.Fatal("fresh client denied")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Stop()

	if !rl.allow("1.2.3.4") {
		t.Fatal("first request denied")
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("second request in window allowed")
	}

	rl.mu.Lock()
	rl.clients["1.2.3.4"].windowStart = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.allow("1.2.3.4") {
		t.Fatal("request after window expiry denied")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Stop()

	var called int
	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || called != 1 {
		t.Fatalf("first request: status=%d called=%d", rr.Code, called)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status=%d, want 429", rr.Code)
	}
	if called != 1 {
		t.Fatalf("handler reached %d times, want 1", called)
	}
	if got := rr.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("Retry-After = %q", got)
	}
}
