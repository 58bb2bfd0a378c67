package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSnapshotTTL is the TTL of the catalog snapshot (48 hours)
	DefaultSnapshotTTL = 48 * time.Hour
)

// Store handles Redis operations for annotations, custom prompts and the
// catalog snapshot. It satisfies catalog.Store.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
