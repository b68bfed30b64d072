package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/response"
	"bookjournal-backend/pkg/jwt"
)

// Context keys
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// bearerToken extract token từ "Bearer <token>"; ok=false khi header không có
func bearerToken(c *gin.Context) (token string, present bool, valid bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true, false
	}
	return strings.TrimSpace(parts[1]), true, true
}

func authenticate(tokens TokenValidator, c *gin.Context, raw string) bool {
	claims, err := tokens.ValidateAccessToken(raw)
	if err != nil {
		return false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return false
	}
	c.Set(ContextUserID, userID)
	c.Set(ContextUsername, claims.Username)
	return true
}

// RequireAuth - reject request không có access token hợp lệ
func RequireAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present, ok := bearerToken(c)
		if !present {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		if !ok {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}
		if !authenticate(tokens, c, raw) {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth - không có token -> anonymous viewer; token sai -> 401
// (một token hỏng không được âm thầm hạ xuống anonymous)
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present, ok := bearerToken(c)
		if !present {
			c.Next()
			return
		}
		if !ok || !authenticate(tokens, c, raw) {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ViewerFromContext returns the viewer set by the auth middlewares,
// or the anonymous viewer when none ran or no token was sent.
func ViewerFromContext(c *gin.Context) visibility.Viewer {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return visibility.Anonymous
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return visibility.Anonymous
	}
	return visibility.As(id)
}
