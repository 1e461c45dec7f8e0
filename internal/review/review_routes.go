package review

import (
	"github.com/mathewsajan/truplace/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/companies/:id/reviews",
		middleware.RateLimitByIP(5, 20),
		handler.ListByCompany,
	)

	reviews := r.Group("/reviews")
	{
		reviews.POST("",
			middleware.Auth(),
			middleware.RateLimitByUser(0.2, 2),
			handler.Submit,
		)
		reviews.POST("/:id/helpful",
			middleware.RateLimitByIP(1, 5),
			handler.MarkHelpful,
		)
	}
}
