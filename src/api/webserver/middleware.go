package webserver

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Rate limit across /api, matching the old deployment: 100 requests per IP
// in a 15 minute window.
const (
	RateWindow = 15 * time.Minute
	RateMax    = 100
)

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

// ipAllowlist rejects every client not named in the list. Opt-in; most
// deployments leave it empty.
func ipAllowlist(allowed []string) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, ip := range allowed {
		set[ip] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := set[c.ClientIP()]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"ok":    false,
				"error": "Bu IP adresinin bu API'ye erişim izni yok.",
			})
			return
		}
		c.Next()
	}
}

// RateLimiter reports whether the keyed client may make another request in
// the current window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

func rateLimit(rl RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "Çok fazla istek gönderildi. Lütfen kısa bir süre sonra tekrar dene.",
			})
			return
		}
		c.Next()
	}
}

type windowEntry struct {
	start time.Time
	count int
}

// MemoryLimiter is a fixed-window counter per key, for single-instance
// deployments and tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string]*windowEntry
}

func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		window:  window,
		max:     max,
		entries: make(map[string]*windowEntry),
	}
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e, ok := m.entries[key]
	if !ok || now.Sub(e.start) >= m.window {
		m.entries[key] = &windowEntry{start: now, count: 1}
		return true
	}
	if e.count >= m.max {
		return false
	}
	e.count++
	return true
}

// Cleanup drops expired windows. Call periodically from a goroutine.
func (m *MemoryLimiter) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, e := range m.entries {
		if now.Sub(e.start) >= m.window {
			delete(m.entries, key)
		}
	}
}

func (m *MemoryLimiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			m.Cleanup()
		}
	}()
}

// RedisLimiter shares the window counters across instances. Redis being down
// fails open; rate limiting is protection, not a feature users depend on.
type RedisLimiter struct {
	rdb    *redis.Client
	window time.Duration
	max    int
}

func NewRedisLimiter(rdb *redis.Client, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, window: window, max: max}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) bool {
	rkey := "ratelimit:" + key
	count, err := r.rdb.Incr(ctx, rkey).Result()
	if err != nil {
		log.Printf("ratelimit: redis incr: %v", err)
		return true
	}
	if count == 1 {
		if err := r.rdb.Expire(ctx, rkey, r.window).Err(); err != nil {
			log.Printf("ratelimit: redis expire: %v", err)
		}
	}
	return count <= int64(r.max)
}
