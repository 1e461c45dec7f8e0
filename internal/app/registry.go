package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mathewsajan/truplace/internal/admin"
	"github.com/mathewsajan/truplace/internal/company"
	"github.com/mathewsajan/truplace/internal/media"
	"github.com/mathewsajan/truplace/internal/messaging/kafka"
	"github.com/mathewsajan/truplace/internal/middleware"
	"github.com/mathewsajan/truplace/internal/notification"
	"github.com/mathewsajan/truplace/internal/request"
	"github.com/mathewsajan/truplace/internal/review"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	uploader media.Uploader,
	allowPersonalEmails bool,
) error {
	// --- Repositories ---
	adminRepo := admin.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	requestRepo := request.NewRepository(gormDB)
	reviewRepo := review.NewRepository(gormDB)

	// --- Services ---
	adminService := admin.NewService(adminRepo)
	companyService := company.NewService(companyRepo, rdb, uploader)
	notificationService := notification.NewService(notificationRepo)
	requestService := request.NewService(gormDB, requestRepo, companyRepo, notificationRepo, outboxRepo)
	reviewService := review.NewService(reviewRepo, companyRepo, allowPersonalEmails)

	// --- Handlers ---
	adminHandler := admin.NewHandler(adminService)
	companyHandler := company.NewHandler(companyService)
	notificationHandler := notification.NewHandler(notificationService)
	requestHandler := request.NewHandler(requestService)
	reviewHandler := review.NewHandler(reviewService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))
	{
		var checker middleware.AdminChecker = adminService

		admin.RegisterRoutes(api, adminHandler, checker)
		company.RegisterRoutes(api, companyHandler, checker)
		notification.RegisterRoutes(api, notificationHandler)
		request.RegisterRoutes(api, requestHandler, checker, rdb)
		review.RegisterRoutes(api, reviewHandler)
	}

	return nil
}
