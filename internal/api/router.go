package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gpstrack/geolife-backend-go/internal/config"
	"github.com/gpstrack/geolife-backend-go/internal/database"
	"github.com/gpstrack/geolife-backend-go/internal/handler"
	"github.com/gpstrack/geolife-backend-go/internal/middleware"
	"github.com/gpstrack/geolife-backend-go/internal/repository"
	"github.com/gpstrack/geolife-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Geolife Backend API is running",
		})
	})

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	trackPointRepo := repository.NewTrackPointRepository(db)

	ingestService := service.NewIngestService(userRepo, activityRepo, trackPointRepo)
	queryService := service.NewQueryService(userRepo, activityRepo, trackPointRepo)

	ingestHandler := handler.NewIngestHandler(ingestService, cfg.DatasetRoot)
	queryHandler := handler.NewQueryHandler(queryService)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(100, time.Minute))
	{
		// 数据导入接口
		api.POST("/ingest", middleware.Auth(cfg.JWTSecret), ingestHandler.Ingest)
		api.POST("/reset", middleware.Auth(cfg.JWTSecret), ingestHandler.Reset)

		// 统计接口
		stats := api.Group("/stats")
		{
			stats.GET("/counts", queryHandler.GetRecordCounts)
			stats.GET("/average-activities", queryHandler.GetAverageActivities)
		}

		// 用户排名接口
		users := api.Group("/users")
		{
			users.GET("/top", queryHandler.GetTopActiveUsers)
			users.GET("/elevation-gain", queryHandler.GetTopElevationGain)
			users.GET("/invalid-activities", queryHandler.GetInvalidActivities)
			users.GET("/geofence", queryHandler.GetGeofenceUsers)
			users.GET("/modes", queryHandler.GetMostUsedModes)
			users.GET("/:id/distance-walked", queryHandler.GetDistanceWalked)
		}

		// 年份统计接口
		years := api.Group("/years")
		{
			years.GET("/most-activities", queryHandler.GetYearWithMostActivities)
			years.GET("/most-hours", queryHandler.GetYearWithMostHours)
		}

		// 交通方式接口
		modes := api.Group("/modes")
		{
			modes.GET("", queryHandler.GetModeCounts)
			modes.GET("/:mode/users", queryHandler.GetUsersByMode)
		}
	}

	return r
}
