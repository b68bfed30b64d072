package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerUser(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 2, CleanupInterval: time.Hour})
	defer rl.Stop()

	alice, bob := uuid.New(), uuid.New()
	r := gin.New()
	r.POST("/follow", func(c *gin.Context) {
		if c.GetHeader("X-User") == "bob" {
			c.Set(ContextUserID, bob)
		} else {
			c.Set(ContextUserID, alice)
		}
		c.Next()
	}, rl.Middleware("follow"), func(c *gin.Context) { c.Status(http.StatusCreated) })

	send := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/follow", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, send("alice").Code)
	assert.Equal(t, http.StatusCreated, send("alice").Code)
	w := send("alice")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusCreated, send("bob").Code, "limits are per user")
	assert.Equal(t, 2, rl.Count())
}

func TestRateLimiter_CleanupDropsIdle(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, CleanupInterval: time.Minute})
	defer rl.Stop()

	rl.limiterFor("a")
	rl.limiterFor("b")
	rl.cleanup(time.Now().Add(time.Hour))
	assert.Zero(t, rl.Count())
}

func TestPerMinute(t *testing.T) {
	cfg := PerMinute(60, 5)
	assert.InDelta(t, 1.0, float64(cfg.Rate), 1e-9)
	assert.Equal(t, 5, cfg.Burst)
}
