package httpserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ecommerce-shop/internal/identity"
)

// identityMiddleware places the caller's user id on the request context.
// Authentication itself is an external concern; the managers stay
// defensive and treat a missing id as "no user" regardless.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if userID != "" {
			ctx := identity.WithUserID(c.Request.Context(), userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
