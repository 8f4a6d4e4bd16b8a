package middleware

import (
	"net/http"

	"boardapi/internal/policy"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the given permission. It must run after
// Authenticate.
func RequirePermission(p policy.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p == policy.AllowAny {
			c.Next()
			return
		}

		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "Authentication credentials were not provided")
			return
		}
		if p == policy.AdminOnly && !user.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}
