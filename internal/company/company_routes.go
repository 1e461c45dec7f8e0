package company

import (
	"github.com/mathewsajan/truplace/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, adminChecker middleware.AdminChecker) {
	companies := r.Group("/companies")
	{
		companies.GET("",
			middleware.RateLimitByIP(5, 20),
			handler.List,
		)
		companies.GET("/search",
			middleware.RateLimitByIP(5, 20),
			handler.Search,
		)
		companies.GET("/:id",
			middleware.RateLimitByIP(5, 20),
			handler.GetByID,
		)

		// Descriptive edits and logo upload are admin-only.
		companies.PUT("/:id",
			middleware.Auth(),
			middleware.RequireAdmin(adminChecker),
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)
		companies.POST("/:id/logo",
			middleware.Auth(),
			middleware.RequireAdmin(adminChecker),
			middleware.RateLimitByUser(0.2, 1),
			handler.UploadLogo,
		)
	}
}
