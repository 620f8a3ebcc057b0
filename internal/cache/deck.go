// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// deck.go provides a Valkey-backed cache of rendered pptx files. Assembling
// a deck re-downloads every embedded image, so repeat downloads of an
// unchanged presentation are served from the cache instead.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// deckKeyPrefix is the Valkey key prefix for cached decks.
	deckKeyPrefix = "deck:"

	// DefaultDeckTTL is how long a rendered deck stays cached.
	DefaultDeckTTL = 15 * time.Minute
)

// DeckCache manages rendered pptx caching in Valkey. Keys combine the
// presentation ID with its updated_at stamp, so any edit or regeneration
// produces a miss without explicit invalidation.
type DeckCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeckCache creates a deck cache backed by the given Valkey client.
func NewDeckCache(client *redis.Client, ttl time.Duration) *DeckCache {
	if ttl == 0 {
		ttl = DefaultDeckTTL
	}
	return &DeckCache{client: client, ttl: ttl}
}

func deckKey(id uuid.UUID, updatedAt time.Time) string {
	return fmt.Sprintf("%s%s:%d", deckKeyPrefix, id, updatedAt.UnixNano())
}

// Get retrieves a cached deck. Returns false on miss or cache error.
func (dc *DeckCache) Get(ctx context.Context, id uuid.UUID, updatedAt time.Time) ([]byte, bool) {
	val, err := dc.client.Get(ctx, deckKey(id, updatedAt)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("deck cache get error", "id", id, "error", err)
		return nil, false
	}
	slog.Debug("deck cache hit", "id", id)
	return val, true
}

// Set stores a rendered deck with the configured TTL.
func (dc *DeckCache) Set(ctx context.Context, id uuid.UUID, updatedAt time.Time, pptx []byte) {
	if err := dc.client.Set(ctx, deckKey(id, updatedAt), pptx, dc.ttl).Err(); err != nil {
		slog.Warn("deck cache set error", "id", id, "error", err)
	}
}

// Invalidate removes every cached rendering of a presentation. Stale
// versions expire on their own; this is for deletes, where the id must
// stop serving immediately.
func (dc *DeckCache) Invalidate(ctx context.Context, id uuid.UUID) {
	var cursor uint64
	for {
		keys, nextCursor, err := dc.client.Scan(ctx, cursor, deckKeyPrefix+id.String()+":*", 100).Result()
		if err != nil {
			slog.Warn("deck cache scan error", "id", id, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := dc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("deck cache delete error", "id", id, "error", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return
		}
	}
}
