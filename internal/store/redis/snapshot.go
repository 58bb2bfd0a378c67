package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/promptdeck/internal/domain"
)

// Snapshot is the last catalog that loaded cleanly, kept so a restart
// survives a broken catalog file.
type Snapshot struct {
	Source  string           `json:"source"`
	SavedAt time.Time        `json:"saved_at"`
	Prompts []*domain.Prompt `json:"prompts"`
}

// SaveSnapshot stores the catalog snapshot
func (s *Store) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, SnapshotKey(), data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the catalog snapshot, nil on a miss
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	data, err := s.client.Get(ctx, SnapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// InvalidateSnapshot removes the catalog snapshot
func (s *Store) InvalidateSnapshot(ctx context.Context) error {
	if err := s.client.Del(ctx, SnapshotKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	return nil
}
