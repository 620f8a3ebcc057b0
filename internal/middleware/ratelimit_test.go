// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Second)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d within the limit was denied", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request over the limit was allowed")
	}

	// A different client has its own window.
	if !rl.allow("10.0.0.2") {
		t.Error("unrelated client was denied")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(2, 100*time.Millisecond)
	defer rl.Stop()

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.1")
	if rl.allow("10.0.0.1") {
		t.Error("limit not enforced")
	}

	time.Sleep(150 * time.Millisecond)

	if !rl.allow("10.0.0.1") {
		t.Error("client still denied after its requests aged out")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Second)
	defer rl.Stop()

	// Stand-in for the generation endpoint the limiter fronts in the
	// router.
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	generate := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/presentations/abc/generate", nil)
		req.RemoteAddr = "203.0.113.7:52110"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 2; i++ {
		if rr := generate(); rr.Code != http.StatusAccepted {
			t.Fatalf("request %d: status = %d, want 202", i+1, rr.Code)
		}
	}

	rr := generate()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "too many requests") {
		t.Errorf("body = %q", rr.Body.String())
	}
	if rr.Header().Get("Retry-After") != "1" {
		t.Errorf("Retry-After = %q, want 1", rr.Header().Get("Retry-After"))
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{name: "forwarded single", xff: "10.0.0.1", remoteAddr: "192.0.2.1:1234", want: "10.0.0.1"},
		{name: "forwarded chain keeps origin", xff: "10.0.0.1, 172.16.0.1, 192.0.2.1", remoteAddr: "192.0.2.1:1234", want: "10.0.0.1"},
		{name: "real-ip header", xri: "10.0.0.2", remoteAddr: "192.0.2.1:1234", want: "10.0.0.2"},
		{name: "remote addr strips port", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "remote addr without port", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/presentations", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(5, 50*time.Millisecond)
	defer rl.Stop()

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")

	time.Sleep(100 * time.Millisecond)
	rl.allow("10.0.0.2") // fresh activity survives the sweep

	rl.sweep()

	rl.mu.Lock()
	_, stale := rl.seen["10.0.0.1"]
	_, fresh := rl.seen["10.0.0.2"]
	rl.mu.Unlock()

	if stale {
		t.Error("idle client not swept")
	}
	if !fresh {
		t.Error("active client swept")
	}
}
