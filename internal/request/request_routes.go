package request

import (
	"github.com/mathewsajan/truplace/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, adminChecker middleware.AdminChecker, rdb *redis.Client) {
	requests := r.Group("/company-requests")
	{
		requests.POST("",
			middleware.Auth(),
			middleware.RateLimitByUser(0.2, 2),
			handler.Submit,
		)
		requests.POST("/check-duplicates",
			middleware.RateLimitByIP(2, 10),
			handler.CheckDuplicates,
		)

		admin := requests.Group("")
		admin.Use(middleware.Auth(), middleware.RequireAdmin(adminChecker))
		{
			admin.GET("", handler.List)
			admin.GET("/:id", handler.GetByID)

			// Decision endpoints replay safely behind an idempotency key.
			admin.POST("/:id/approve",
				middleware.Idempotency(rdb),
				handler.Approve,
			)
			admin.POST("/:id/reject",
				middleware.Idempotency(rdb),
				handler.Reject,
			)
		}
	}
}
