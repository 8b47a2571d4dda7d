package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupStore implements ports.EventDedupStore using Redis SET NX. Relays
// re-deliver events freely (reconnects, overlapping relay sets), so every
// applied event id is remembered until the relays' backfill horizon passes.
type DedupStore struct {
	client *goredis.Client
	prefix string
}

// NewDedupStore creates a new Redis-backed event dedup store.
func NewDedupStore(client *goredis.Client) *DedupStore {
	return &DedupStore{
		client: client,
		prefix: "event:",
	}
}

// CheckAndSet atomically checks if an event id was seen, marking it if not.
// Returns true if the event is new.
func (s *DedupStore) CheckAndSet(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	key := s.prefix + eventID
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — event was already applied
			return false, nil
		}
		return false, fmt.Errorf("redis event check: %w", err)
	}
	return result == "OK", nil
}
