package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"bookjournal-backend/internal/shared/response"
)

// RateLimiterConfig - giới hạn per-user cho các write endpoints
type RateLimiterConfig struct {
	Rate            rate.Limit
	Burst           int
	CleanupInterval time.Duration
}

// PerMinute builds a config from a requests-per-minute budget.
func PerMinute(requests, burst int) RateLimiterConfig {
	return RateLimiterConfig{
		Rate:            rate.Limit(float64(requests) / 60.0),
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
	}
}

type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter quản lý một rate.Limiter cho mỗi user (hoặc IP khi anonymous)
type RateLimiter struct {
	config   RateLimiterConfig
	mu       sync.Mutex
	limiters map[string]*userLimiter
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter khởi động goroutine cleanup; gọi Stop khi shutdown
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*userLimiter),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware phải đặt sau RequireAuth để key theo user id
func (rl *RateLimiter) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if viewer := ViewerFromContext(c); viewer.Authenticated() {
			key = viewer.ID.String()
		}

		if !rl.limiterFor(scope + ":" + key).Allow() {
			log.Warn().
				Str("request_id", c.GetString(ContextRequestID)).
				Str("key", key).
				Str("scope", scope).
				Msg("Rate limit exceeded")

			c.Header("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			response.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Count trả về số limiter đang được giữ
func (rl *RateLimiter) Count() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if ul, ok := rl.limiters[key]; ok {
		ul.lastAccess = time.Now()
		return ul.limiter
	}
	ul := &userLimiter{
		limiter:    rate.NewLimiter(rl.config.Rate, rl.config.Burst),
		lastAccess: time.Now(),
	}
	rl.limiters[key] = ul
	return ul.limiter
}

func (rl *RateLimiter) retryAfterSeconds() int {
	if rl.config.Rate <= 0 {
		return 60
	}
	sec := int(math.Ceil(1.0 / float64(rl.config.Rate)))
	if sec < 1 {
		sec = 1
	}
	return sec
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup xóa limiter không được dùng quá 2 * CleanupInterval
func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.config.CleanupInterval * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, ul := range rl.limiters {
		if now.Sub(ul.lastAccess) > ttl {
			delete(rl.limiters, key)
		}
	}
}
