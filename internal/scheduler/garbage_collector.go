package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/domain"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
)

const (
	// DefaultGCThreshold is how long a bookmark must stay unresolvable
	// before it is removed
	DefaultGCThreshold = 24 * time.Hour
)

// GarbageCollector removes bookmarks whose prompt no longer exists:
// a catalog entry dropped by a reload or a deleted custom prompt.
type GarbageCollector struct {
	store     catalog.Store
	snap      catalog.Snapshotter
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time

	mu      sync.Mutex
	missing map[int]time.Time // first time each id failed to resolve

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	store catalog.Store,
	snap catalog.Snapshotter,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     store,
		snap:      snap,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		now:       time.Now,
		missing:   make(map[int]time.Time),
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if gc.interval <= 0 {
		return fmt.Errorf("garbage collector interval must be > 0, got %v", gc.interval)
	}

	// Run immediately on start
	if _, err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	gc.stopOnce.Do(func() { close(gc.stopCh) })
}

// Collect removes bookmarks that have been unresolvable for longer than
// the threshold and returns how many were removed. Nothing is collected
// before a catalog is loaded.
func (gc *GarbageCollector) Collect(ctx context.Context) (int, error) {
	c := gc.snap.Current()
	if c == nil {
		gc.logger.Debug("skipping garbage collection, catalog not loaded")
		return 0, nil
	}

	annotations, err := gc.store.Annotations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list annotations: %w", err)
	}

	gc.mu.Lock()
	defer gc.mu.Unlock()

	now := gc.now()
	seen := make(map[int]bool, len(annotations))
	deleted := 0

	for _, a := range annotations {
		if !a.Bookmarked {
			continue
		}
		seen[a.PromptID] = true

		ok, err := gc.resolves(ctx, c, a.PromptID)
		if err != nil {
			return deleted, err
		}
		if ok {
			delete(gc.missing, a.PromptID)
			continue
		}

		since, tracked := gc.missing[a.PromptID]
		if !tracked {
			gc.missing[a.PromptID] = now
			continue
		}
		if now.Sub(since) < gc.threshold {
			continue
		}

		if err := gc.store.Set(ctx, a.PromptID, false, now); err != nil {
			gc.logger.Warn("failed to remove stale bookmark",
				logger.Int("id", a.PromptID),
				logger.Error(err))
			continue
		}
		delete(gc.missing, a.PromptID)

		gc.logger.Info("garbage collected stale bookmark",
			logger.Int("id", a.PromptID),
			logger.String("missing_for", now.Sub(since).String()))
		deleted++
	}

	// forget ids that were unbookmarked meanwhile
	for id := range gc.missing {
		if !seen[id] {
			delete(gc.missing, id)
		}
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("bookmarks_deleted", deleted))
	} else {
		gc.logger.Debug("no bookmarks to garbage collect")
	}

	return deleted, nil
}

func (gc *GarbageCollector) resolves(ctx context.Context, c *catalog.Catalog, id int) (bool, error) {
	if id < domain.CustomIDBase {
		return c.Has(id), nil
	}
	_, err := gc.store.GetCustom(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrPromptNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to resolve custom prompt %d: %w", id, err)
	}
}
