package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/index"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/metrics"
	redisstore "github.com/MrSnakeDoc/promptdeck/internal/store/redis"
)

// SourceRedisSnapshot marks an index restored from the Redis snapshot
const SourceRedisSnapshot = "redis-snapshot"

// SnapshotSyncer restores the last good catalog from Redis on startup
type SnapshotSyncer struct {
	store   *redisstore.Store
	index   *index.MemoryIndex
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewSnapshotSyncer creates a new snapshot syncer
func NewSnapshotSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	m *metrics.Metrics,
) *SnapshotSyncer {
	return &SnapshotSyncer{
		store:   store,
		index:   idx,
		logger:  log,
		metrics: m,
	}
}

// Sync installs the Redis snapshot into the memory index.
// A missing snapshot is not an error.
func (ss *SnapshotSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("restoring catalog snapshot from redis")

	snap, err := ss.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		ss.logger.Info("no catalog snapshot found in redis")
		return nil
	}

	c, err := catalog.New(snap.Prompts)
	if err != nil {
		// Drop it so the next good reload replaces it
		if derr := ss.store.InvalidateSnapshot(ctx); derr != nil {
			ss.logger.Warn("failed to drop invalid snapshot", logger.Error(derr))
		}
		return fmt.Errorf("invalid catalog snapshot: %w", err)
	}

	ss.index.Update(c, SourceRedisSnapshot)
	ss.metrics.SetRecords(c.Len())
	ss.logger.Info("restored catalog snapshot from redis",
		logger.String("origin", snap.Source),
		logger.Int("count", c.Len()))

	return nil
}
