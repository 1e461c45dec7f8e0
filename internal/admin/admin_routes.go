package admin

import (
	"github.com/mathewsajan/truplace/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, adminChecker middleware.AdminChecker) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.Auth(), middleware.RequireAdmin(adminChecker))
	{
		adminGroup.GET("/stats", handler.Stats)
	}
}
