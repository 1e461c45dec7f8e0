package middleware

import (
	"context"
	"net/http"

	"github.com/mathewsajan/truplace/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// AdminChecker is a local interface so this package does not depend on the
// admin feature package. Anything that can answer "is this user an admin"
// fits.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAdmin assumes Auth ran earlier in the chain. The fixed test
// identity is always an admin when the testing bypass is active.
func RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		if AuthDisabledForTesting() && userID == TestUserID {
			c.Next()
			return
		}

		isAdmin, err := checker.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to verify admin access", nil)
			c.Abort()
			return
		}
		if !isAdmin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
