package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string
	LogFile    string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MaxConcurrency int
	FetchTimeout   time.Duration
	RenderJS       bool
	PageCacheTTL   time.Duration

	SpiderBin     string
	SpiderTimeout time.Duration
}

// Load loads configuration from environment variables, after sourcing a
// local .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "user"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:       getEnv("POSTGRES_DB", "knowledge"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		MaxConcurrency:   getEnvAsInt("MAX_CONCURRENCY", 5),
		FetchTimeout:     getEnvAsDuration("FETCH_TIMEOUT_SECONDS", 30) * time.Second,
		RenderJS:         getEnvAsBool("RENDER_JS", false),
		PageCacheTTL:     getEnvAsDuration("PAGE_CACHE_TTL_HOURS", 48) * time.Hour,
		SpiderBin:        getEnv("SPIDER_BIN", "spider"),
		SpiderTimeout:    getEnvAsDuration("SPIDER_TIMEOUT_SECONDS", 120) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}
