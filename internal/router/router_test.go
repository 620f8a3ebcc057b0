// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"

	"deckgen/internal/ai"
	"deckgen/internal/handlers"
	"deckgen/internal/session"
)

// newTestRouter wires the router with empty handler groups. Anonymous
// requests never reach a backing service, so the Valkey client can point
// nowhere and the stores can be zero-valued.
func newTestRouter() http.Handler {
	sessions := session.NewStore(redis.NewClient(&redis.Options{Addr: "localhost:0"}))
	auth := handlers.NewAuth(sessions, nil)
	presentations := handlers.NewPresentations(nil, nil, nil, nil, nil, nil)
	admin := handlers.NewAdmin(ai.NewRegistry("openai", nil))
	return New(sessions, auth, presentations, admin)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := newTestRouter()

	routes := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/auth/me", http.StatusUnauthorized},
		{http.MethodPost, "/presentations", http.StatusUnauthorized},
		{http.MethodGet, "/presentations", http.StatusUnauthorized},
		{http.MethodGet, "/presentations/some-id", http.StatusUnauthorized},
		{http.MethodPost, "/presentations/some-id/generate", http.StatusUnauthorized},
		{http.MethodGet, "/presentations/some-id/download", http.StatusUnauthorized},
		{http.MethodGet, "/admin/ai/provider", http.StatusUnauthorized},
	}
	for _, tt := range routes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got == "" {
		t.Error("X-Frame-Options not set")
	}
}
