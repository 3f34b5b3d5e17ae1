//go:build unit

package api_test

import (
	"net/http"

	"gocart/internal/domain/user"
	"gocart/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fakeAuth stands in for RequireAuth: any bearer header authenticates as caller.
func fakeAuth(caller user.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetCaller(c, caller)
		c.Next()
	}
}

func testCaller() user.Caller {
	return user.Caller{UserID: uuid.New(), Role: user.RoleCustomer}
}
