package mw

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/promptdeck/internal/logger"
	"github.com/MrSnakeDoc/promptdeck/internal/utils"
)

// RateLimitConfig sizes the per-client token buckets.
type RateLimitConfig struct {
	Burst      int           // bucket size
	PerMinute  int           // refill rate per client
	MaxClients int           // sweep early once this many clients are tracked (0 = unbounded)
	IdleTTL    time.Duration // forget clients idle for this long
	TrustProxy bool          // resolve the client from proxy headers

	// Key overrides the client key. Defaults to the client IP.
	Key func(r *http.Request) string
	// Logger receives one debug line per rejected request. Optional.
	Logger logger.Logger

	now func() time.Time
}

type tokenBucket struct {
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

type limiter struct {
	mu        sync.Mutex
	burst     float64
	perSecond float64
	idleTTL   time.Duration
	max       int
	clients   map[string]*tokenBucket
	nextSweep time.Time
}

func newLimiter(cfg RateLimitConfig, now time.Time) *limiter {
	burst := max(cfg.Burst, 1)
	perMin := max(cfg.PerMinute, 1)
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &limiter{
		burst:     float64(burst),
		perSecond: float64(perMin) / 60,
		idleTTL:   ttl,
		max:       cfg.MaxClients,
		clients:   make(map[string]*tokenBucket),
		nextSweep: now.Add(ttl),
	}
}

// take spends one token for key. When the bucket is empty it reports how
// many whole seconds until the next token.
func (l *limiter) take(key string, now time.Time) (ok bool, remaining, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) || (l.max > 0 && len(l.clients) >= l.max) {
		l.sweep(now)
	}

	b, found := l.clients[key]
	if !found {
		b = &tokenBucket{tokens: l.burst, updated: now}
		l.clients[key] = b
	}
	b.lastSeen = now

	if dt := now.Sub(b.updated).Seconds(); dt > 0 {
		b.tokens = math.Min(l.burst, b.tokens+dt*l.perSecond)
		b.updated = now
	}

	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / l.perSecond))
		return false, 0, max(wait, 1)
	}
	b.tokens--
	return true, int(b.tokens), 0
}

func (l *limiter) sweep(now time.Time) {
	for key, b := range l.clients {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.clients, key)
		}
	}
	l.nextSweep = now.Add(l.idleTTL)
}

func (l *limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit throttles each client with a token bucket holding Burst
// requests and refilled at PerMinute.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	now := cfg.now
	if now == nil {
		now = time.Now
	}
	key := cfg.Key
	if key == nil {
		key = func(r *http.Request) string { return utils.ClientIP(r, cfg.TrustProxy) }
	}
	l := newLimiter(cfg, now())
	limit := strconv.Itoa(int(l.burst))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := key(r)
			ok, remaining, retry := l.take(client, now())

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			if cfg.Logger != nil {
				cfg.Logger.Debug("rate limited",
					logger.String("client", client),
					logger.String("path", r.URL.Path),
					logger.Int("retry_after", retry))
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": fmt.Sprintf("rate limit exceeded, retry in %ds", retry),
			})
		})
	}
}
