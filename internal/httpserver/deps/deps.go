package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
	"github.com/MrSnakeDoc/promptdeck/internal/index"
	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/metrics"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time   // for testing, defaults to time.Now
	AllowedHosts    []string           // Host headers allowed to access admin routes
	AllowedCIDRS    []string           // IPs allowed to access admin routes
	TrustProxy      bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins     []string           // browser origins allowed on /api
	RateLimitBurst  int                // mutation routes: bucket size per client IP
	RateLimitPerMin int                // mutation routes: refill per client IP per minute
	CatalogFile     string             // Path to the catalog file, empty for the embedded catalog
	StoreBackend    string             // "memory" or "redis"
	RedisClient     *redis.Client      // Redis client connection, nil with the memory store
	MemoryIndex     *index.MemoryIndex // Current catalog snapshot
	Service         *catalog.Service   // Catalog queries and commands
	Metrics         *metrics.Metrics   // nil disables /metrics
	ReloadTrigger   chan struct{}      // Channel to trigger manual catalog reload
}

// Now returns the current time through TimeNow when set
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
