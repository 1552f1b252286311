package main

import (
	"log"

	"github.com/gpstrack/geolife-backend-go/internal/api"
	"github.com/gpstrack/geolife-backend-go/internal/config"
	"github.com/gpstrack/geolife-backend-go/internal/database"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	if err := database.CreateCollections(database.GetDB()); err != nil {
		log.Fatal("Failed to create collections:", err)
	}

	// 初始化路由
	router := api.SetupRouter(cfg)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
