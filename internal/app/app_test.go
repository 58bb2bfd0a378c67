package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/promptdeck/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenPort:          "127.0.0.1:0",
		ShutdownTimeout:     time.Second,
		LogLevel:            "error",
		Store:               config.StoreMemory,
		GCInterval:          time.Hour,
		GCThreshold:         time.Hour,
		RateLimitBurst:      10,
		RateLimitPerMin:     10,
		RedisConnectTimeout: time.Second,
		RedisRetryInterval:  50 * time.Millisecond,
		RedisMaxWait:        100 * time.Millisecond,
		RedisPingTimeout:    100 * time.Millisecond,
	}
}

func runFor(t *testing.T, a *App, d time.Duration) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return a.Run(ctx)
}

func TestRunMemoryStore(t *testing.T) {
	a, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	require.NoError(t, runFor(t, a, 200*time.Millisecond))
	assert.Greater(t, a.memIndex.Count(), 0, "embedded catalog should be loaded")
	assert.Nil(t, a.redisClient)
}

func TestRunRedisStore(t *testing.T) {
	server := miniredis.RunT(t)

	cfg := testConfig()
	cfg.Store = config.StoreRedis
	cfg.RedisAddr = server.Addr()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a.redisClient)

	require.NoError(t, runFor(t, a, 200*time.Millisecond))
	assert.True(t, server.Exists("promptdeck:catalog:snapshot"), "catalog snapshot should be saved")
}

func TestNewRedisUnavailable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	cfg := testConfig()
	cfg.Store = config.StoreRedis
	cfg.RedisAddr = addr
	cfg.RedisConnectTimeout = 200 * time.Millisecond

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRunFailsOnBrokenCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogFile = t.TempDir() + "/missing.yaml"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Error(t, runFor(t, a, time.Second))
}
