package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/index"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/metrics"
	"github.com/MrSnakeDoc/promptdeck/internal/sources/catalogfile"
	redisstore "github.com/MrSnakeDoc/promptdeck/internal/store/redis"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 250 * time.Millisecond

// CatalogReloader keeps the memory index in sync with the catalog file
type CatalogReloader struct {
	loader        *catalogfile.Loader
	mapper        *catalogfile.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	metrics       *metrics.Metrics
	interval      time.Duration
	watch         bool
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// ReloaderOptions configures a CatalogReloader
type ReloaderOptions struct {
	CatalogFile   string        // empty = embedded catalog
	Interval      time.Duration // 0 disables periodic reloads
	Watch         bool          // reload on file change events
	ManualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader. store and m may be nil.
func NewCatalogReloader(
	opts ReloaderOptions,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	m *metrics.Metrics,
) *CatalogReloader {
	return &CatalogReloader{
		loader:        catalogfile.NewLoader(opts.CatalogFile),
		mapper:        catalogfile.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log,
		metrics:       m,
		interval:      opts.Interval,
		watch:         opts.Watch && opts.CatalogFile != "",
		stopCh:        make(chan struct{}),
		manualTrigger: opts.ManualTrigger,
	}
}

// Start loads the catalog, then reloads it in the background.
// A failed first load is fatal only when no snapshot is installed yet.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		if cr.index.Current() == nil {
			return fmt.Errorf("initial catalog load failed: %w", err)
		}
		cr.logger.Warn("initial catalog load failed, serving restored snapshot",
			logger.String("source", cr.index.Source()),
			logger.Error(err))
	}

	var events <-chan struct{}
	if cr.watch {
		ch, err := cr.startWatcher(ctx)
		if err != nil {
			cr.logger.Warn("catalog watch disabled", logger.Error(err))
		} else {
			events = ch
		}
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if cr.interval > 0 {
		ticker = time.NewTicker(cr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				cr.reloadAndLog(ctx)
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				cr.reloadAndLog(ctx)
			case <-events:
				cr.logger.Info("catalog file changed",
					logger.String("file", cr.loader.Path()))
				cr.reloadAndLog(ctx)
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader. It is safe to call more than once.
func (cr *CatalogReloader) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
}

func (cr *CatalogReloader) reloadAndLog(ctx context.Context) {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Error("failed to reload catalog, keeping current snapshot",
			logger.Error(err))
	}
}

// Reload loads, validates and installs the catalog. On failure the current
// snapshot stays in place.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	source := cr.loader.Source()
	cr.logger.Debug("reloading catalog", logger.String("source", source))

	c, err := cr.load()
	if err != nil {
		cr.metrics.ObserveReload(0, err)
		return err
	}
	cr.metrics.ObserveReload(c.Len(), nil)

	cr.index.Update(c, source)
	cr.logger.Info("catalog loaded",
		logger.String("source", source),
		logger.Int("count", c.Len()))

	// Redis snapshot is best effort, the index is the primary source
	if cr.store != nil {
		snap := &redisstore.Snapshot{Source: source, SavedAt: time.Now().UTC(), Prompts: c.All()}
		if err := cr.store.SaveSnapshot(ctx, snap); err != nil {
			cr.logger.Warn("failed to save catalog snapshot to redis", logger.Error(err))
		}
	}

	return nil
}

func (cr *CatalogReloader) load() (*catalog.Catalog, error) {
	config, err := cr.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	c, err := catalog.New(cr.mapper.MapPrompts(config))
	if err != nil {
		return nil, fmt.Errorf("failed to validate catalog %s: %w", cr.loader.Source(), err)
	}
	return c, nil
}

// startWatcher watches the directory of the catalog file, since editors
// often replace the file instead of writing it in place.
func (cr *CatalogReloader) startWatcher(ctx context.Context) (<-chan struct{}, error) {
	path, err := filepath.Abs(cr.loader.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	changed := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if debounce == nil {
					debounce = time.NewTimer(watchDebounce)
				} else {
					debounce.Reset(watchDebounce)
				}
				fire = debounce.C
			case <-fire:
				fire = nil
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				cr.logger.Warn("catalog watcher error", logger.Error(err))
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	cr.logger.Info("watching catalog file", logger.String("file", path))
	return changed, nil
}
