package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env         string
	AppSecret   string
	OMDBBaseURL string
	OMDBAPIKey  string
	DataDir     string
	TokenExpiry time.Duration
	Port        string
	SiteName    string
	SiteUrl     string
}

// Load 加载配置
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "168")) // 默认 7 天

	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		AppSecret:   appSecret,
		OMDBBaseURL: getEnv("OMDB_BASE_URL", "https://www.omdbapi.com"),
		OMDBAPIKey:  getEnv("OMDB_API_KEY", "a34b9550"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		TokenExpiry: time.Duration(expiryHours) * time.Hour,
		Port:        getEnv("PORT", "5005"),
		SiteName:    getEnv("SITE_NAME", "CineHunt"),
		SiteUrl:     getEnv("SITE_URL", "http://localhost:5005"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
