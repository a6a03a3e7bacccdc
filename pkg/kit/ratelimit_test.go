package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiterBlocksOverLimit(t *testing.T) {
	l := NewIPRateLimiter(3, time.Minute)

	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/teas", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		if got := do("10.0.0.1:1234"); got != http.StatusOK {
			t.Fatalf("request %d: status=%d", i, got)
		}
	}
	if got := do("10.0.0.1:1234"); got != http.StatusTooManyRequests {
		t.Fatalf("over limit: status=%d", got)
	}

	// other clients keep their own budget
	if got := do("10.0.0.2:1234"); got != http.StatusOK {
		t.Fatalf("second ip: status=%d", got)
	}
}

func TestIPRateLimiterWindowSlides(t *testing.T) {
	l := NewIPRateLimiter(1, 10*time.Millisecond)

	now := time.Now()
	if l.recordAndCheck("10.0.0.1", now, now.Add(-10*time.Millisecond)) {
		t.Fatal("first hit should pass")
	}
	if !l.recordAndCheck("10.0.0.1", now, now.Add(-10*time.Millisecond)) {
		t.Fatal("second hit inside window should be limited")
	}

	later := now.Add(20 * time.Millisecond)
	if l.recordAndCheck("10.0.0.1", later, later.Add(-10*time.Millisecond)) {
		t.Fatal("hit after window expiry should pass")
	}
}
