package config

import (
	"os"
)

// Config 应用配置
type Config struct {
	Port        string
	DBPath      string
	DatasetRoot string
	JWTSecret   string
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/geolife/geolife.db"
	}

	datasetRoot := os.Getenv("DATASET_ROOT")
	if datasetRoot == "" {
		datasetRoot = "./dataset"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:        port,
		DBPath:      dbPath,
		DatasetRoot: datasetRoot,
		JWTSecret:   jwtSecret,
	}
}
