package middleware

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"golang.org/x/time/rate"
)

// RateLimiter implements per-client rate limiting using token buckets
type RateLimiter struct {
	config   config.RateLimitConfig
	clients  map[string]*rate.Limiter
	lastSeen map[string]time.Time
	mu       sync.Mutex
	stop     chan struct{}
	once     sync.Once
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	if cfg.BurstSize < 1 {
		cfg.BurstSize = 1
	}
	rl := &RateLimiter{
		config:   cfg,
		clients:  make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		stop:     make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go rl.cleanupClients()
	}
	return rl
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(c.ClientIP())
		limit := fmt.Sprintf("%d", rl.config.RequestsPerMinute)

		if !limiter.Allow() {
			retryAfter := rl.retryAfter()

			c.Header("X-RateLimit-Limit", limit)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%.0f", math.Ceil(retryAfter.Seconds())))

			resp := models.NewErrorResponse(models.ErrorCodeRateLimit,
				fmt.Sprintf("Too many requests. Try again in %v", retryAfter),
				gin.H{"retry_after": retryAfter.Seconds()})
			resp.SetRequestID(c.GetString(RequestIDKey))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, resp)
			return
		}

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", int(math.Max(0, limiter.Tokens()))))
		c.Next()
	}
}

// getLimiter gets or creates a rate limiter for a client
func (rl *RateLimiter) getLimiter(clientID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lastSeen[clientID] = time.Now()
	if limiter, exists := rl.clients[clientID]; exists {
		return limiter
	}

	// requests per minute to requests per second
	rps := rate.Limit(float64(rl.config.RequestsPerMinute) / 60.0)
	limiter := rate.NewLimiter(rps, rl.config.BurstSize)
	rl.clients[clientID] = limiter
	return limiter
}

// retryAfter is the time for one token to become available
func (rl *RateLimiter) retryAfter() time.Duration {
	tokensPerSecond := float64(rl.config.RequestsPerMinute) / 60.0
	if tokensPerSecond <= 0 {
		return time.Minute
	}
	return time.Duration(float64(time.Second) / tokensPerSecond)
}

// cleanupClients removes limiters of clients not seen for two intervals
func (rl *RateLimiter) cleanupClients() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evict(now.Add(-rl.config.CleanupInterval * 2))
		}
	}
}

func (rl *RateLimiter) evict(cutoff time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for clientID, lastSeen := range rl.lastSeen {
		if lastSeen.Before(cutoff) {
			delete(rl.clients, clientID)
			delete(rl.lastSeen, clientID)
			removed++
		}
	}
	return removed
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// GetStats returns rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"active_clients":      len(rl.clients),
		"requests_per_minute": rl.config.RequestsPerMinute,
		"burst_size":          rl.config.BurstSize,
	}
}
