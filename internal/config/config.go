package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline

	LogLevel      string // "debug" | "info" | "warn" | "error"
	PrettyLog     bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile       string // optional rotating JSON log file
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	CatalogFile    string        // path to the catalog YAML (empty = embedded catalog)
	ReloadInterval time.Duration // interval to reload the catalog (0 = disabled)
	WatchCatalog   bool          // reload on catalog file changes
	GCInterval     time.Duration // interval to collect stale bookmarks
	GCThreshold    time.Duration // how long a bookmark may point to a missing prompt

	Store string // "memory" | "redis"

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict admin routes to specific Host headers
	AllowedCIDRS []string // optional, restrict admin routes to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // allowed browser origins for /api

	RateLimitBurst  int // mutation routes: bucket size per client IP
	RateLimitPerMin int // mutation routes: refill per client IP per minute
}

func Load() *Config {
	LoadEnvFiles()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PROMPTDECK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PROMPTDECK_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("PROMPTDECK_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:      getenv("PROMPTDECK_LOG_LEVEL", "info"),
		PrettyLog:     mustBool("PROMPTDECK_PRETTY_LOG", true),
		LogFile:       getenv("PROMPTDECK_LOG_FILE", ""),
		LogMaxSizeMB:  getenvInt("PROMPTDECK_LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getenvInt("PROMPTDECK_LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getenvInt("PROMPTDECK_LOG_MAX_AGE_DAYS", 14),
		LogCompress:   mustBool("PROMPTDECK_LOG_COMPRESS", true),

		// Catalog
		CatalogFile:    getenv("PROMPTDECK_CATALOG_FILE", ""),
		ReloadInterval: mustDuration("PROMPTDECK_RELOAD_INTERVAL", 24*time.Hour),
		WatchCatalog:   mustBool("PROMPTDECK_WATCH_CATALOG", true),
		GCInterval:     mustDuration("PROMPTDECK_GC_INTERVAL", time.Hour),
		GCThreshold:    mustDuration("PROMPTDECK_GC_THRESHOLD", 24*time.Hour),

		Store: strings.ToLower(getenv("PROMPTDECK_STORE", StoreMemory)),

		// Redis settings
		RedisAddr:             getenv("PROMPTDECK_REDIS_ADDR", ""),
		RedisUser:             getenv("PROMPTDECK_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("PROMPTDECK_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("PROMPTDECK_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("PROMPTDECK_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("PROMPTDECK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("PROMPTDECK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("PROMPTDECK_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("PROMPTDECK_CORS_ORIGINS", "*")),

		RateLimitBurst:  getenvInt("PROMPTDECK_RATE_LIMIT_BURST", 30),
		RateLimitPerMin: getenvInt("PROMPTDECK_RATE_LIMIT_PER_MIN", 120),
	}

	switch cfg.Store {
	case StoreMemory:
	case StoreRedis:
		// Redis is only mandatory when it backs the store
		cfg.RedisAddr = requireEnv("PROMPTDECK_REDIS_ADDR")
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: PROMPTDECK_REDIS_PASSWORD is required when PROMPTDECK_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: Invalid PROMPTDECK_STORE %q (want %q or %q)", cfg.Store, StoreMemory, StoreRedis))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
