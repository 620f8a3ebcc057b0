package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func bearerRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestSessionCreateAndGet(t *testing.T) {
	store := NewStore(testValkeyClient(t))
	ctx := context.Background()

	userID := uuid.New()
	token, err := store.Create(ctx, &Data{
		UserID:      userID,
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Role:        "user",
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(token) != tokenLength*2 {
		t.Errorf("token length = %d, want %d", len(token), tokenLength*2)
	}

	data, err := store.Get(ctx, bearerRequest(token))
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if data == nil || data.UserID != userID || data.Email != "alice@example.com" {
		t.Fatalf("session data = %+v", data)
	}
	if data.CreatedAt.IsZero() {
		t.Error("created_at not stamped")
	}
}

func TestSessionGetWithoutToken(t *testing.T) {
	store := NewStore(testValkeyClient(t))

	data, err := store.Get(context.Background(), bearerRequest(""))
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil without a token, got %+v", data)
	}
}

func TestSessionGetUnknownToken(t *testing.T) {
	store := NewStore(testValkeyClient(t))

	data, err := store.Get(context.Background(), bearerRequest("deadbeef"))
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil for unknown token, got %+v", data)
	}
}

func TestSessionDestroy(t *testing.T) {
	store := NewStore(testValkeyClient(t))
	ctx := context.Background()

	token, err := store.Create(ctx, &Data{UserID: uuid.New(), Email: "x@example.com"})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := store.Destroy(ctx, bearerRequest(token)); err != nil {
		t.Fatalf("destroy session: %v", err)
	}
	data, err := store.Get(ctx, bearerRequest(token))
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if data != nil {
		t.Fatal("session survives destroy")
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer  abc123", "abc123"},
		{"bearer abc123", ""},
		{"Basic abc123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := TokenFromRequest(r); got != tt.want {
			t.Errorf("TokenFromRequest(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
