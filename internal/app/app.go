package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/config"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver"
	"github.com/MrSnakeDoc/promptdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/promptdeck/internal/index"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/metrics"
	"github.com/MrSnakeDoc/promptdeck/internal/redis"
	"github.com/MrSnakeDoc/promptdeck/internal/scheduler"
	"github.com/MrSnakeDoc/promptdeck/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/promptdeck/internal/store/redis"
	"github.com/MrSnakeDoc/promptdeck/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.CatalogReloader
	gc          *scheduler.GarbageCollector
}

// New wires the application from cfg. With the redis store it connects
// first and fails fast when Redis stays unavailable.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loggerClient := logger.NewWithFile(cfg.LogLevel, cfg.PrettyLog, logger.FileOptions{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})

	m := metrics.New()
	memIndex := index.NewMemoryIndex()

	var (
		store       catalog.Store
		redisStore  *redisstore.Store
		redisClient *goredis.Client
	)

	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient.Named("redis"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		redisClient = client
		redisStore = redisstore.NewStore(client)
		store = redisStore

		// Restore the last good catalog so a broken file does not take us down
		syncer := scheduler.NewSnapshotSyncer(redisStore, memIndex, loggerClient.Named("snapshot"), m)
		if err := syncer.Sync(ctx); err != nil {
			loggerClient.Warn("failed to restore catalog snapshot from redis, will load from file",
				logger.Error(err))
		}
	default:
		loggerClient.Info("using in-memory store, bookmarks and custom prompts are not persisted")
		store = memory.NewStore()
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		scheduler.ReloaderOptions{
			CatalogFile:   cfg.CatalogFile,
			Interval:      cfg.ReloadInterval,
			Watch:         cfg.WatchCatalog,
			ManualTrigger: reloadTrigger,
		},
		redisStore,
		memIndex,
		loggerClient.Named("reloader"),
		m,
	)

	gc := scheduler.NewGarbageCollector(
		store,
		memIndex,
		loggerClient.Named("gc"),
		cfg.GCInterval,
		cfg.GCThreshold,
	)

	service := catalog.NewService(memIndex, store, nil, loggerClient.Named("catalog"), m)

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:          loggerClient.Named("http"),
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CatalogFile:     cfg.CatalogFile,
		StoreBackend:    cfg.Store,
		RedisClient:     redisClient,
		MemoryIndex:     memIndex,
		Service:         service,
		Metrics:         m,
		ReloadTrigger:   reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient.Named("http"), d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		gc:          gc,
	}, nil
}

// Run starts the background jobs and the HTTP server, and blocks until
// ctx is cancelled or SIGINT/SIGTERM is received.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting promptdeck %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())
	defer func() { _ = a.logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load the catalog and start periodic refresh
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.Bool("watch", a.cfg.WatchCatalog))

	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.reloader.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	if runErr == nil {
		a.logger.Info("✅ promptdeck stopped cleanly")
	}
	return runErr
}
