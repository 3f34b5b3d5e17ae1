package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"gocart/internal/domain/user"
	"gocart/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxCallerKey   = "caller"
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		caller, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		SetCaller(c, caller)
		c.Next()
	}
}

// SetCaller stores the authenticated identity on the request.
func SetCaller(c *gin.Context, caller user.Caller) {
	c.Set(ctxCallerKey, caller)
	c.Set(ctxUserIDKey, caller.UserID)
	c.Set(ctxUserRoleKey, caller.Role)
	c.Set("jwt_claims", map[string]any{
		"user_id": caller.UserID.String(),
		"role":    string(caller.Role),
	})
}

// GetCaller returns the identity set by RequireAuth.
func GetCaller(c *gin.Context) (user.Caller, bool) {
	v, exists := c.Get(ctxCallerKey)
	if !exists {
		return user.Caller{}, false
	}
	caller, ok := v.(user.Caller)
	return caller, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}
