package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	AuthUser     string
	AuthPass     string
	CacheSize    int
	HistoryLimit int
	UploadDir    string
	LogLevel     string
}

func LoadConfig() Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("CACHE_SIZE", "256"))
	historyLimit, _ := strconv.Atoi(getEnv("HISTORY_LIMIT", "20"))

	return Config{
		Port:         port,
		DatabaseURL:  getEnv("DATABASE_URL", "qrstudio.db"),
		AuthUser:     getEnv("AUTH_USER", "admin"),
		AuthPass:     getEnv("AUTH_PASS", "password"),
		CacheSize:    cacheSize,
		HistoryLimit: historyLimit,
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
