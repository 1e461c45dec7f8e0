package notification

import (
	"github.com/mathewsajan/truplace/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	// Token-addressed and unauthenticated: the token itself is the
	// credential.
	r.GET("/notifications/:token",
		middleware.RateLimitByIP(5, 20),
		handler.GetByToken,
	)
}
