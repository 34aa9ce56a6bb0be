package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Admin endpoints
	AdminAPIKey string

	// Rate limiting. An empty RedisAddr keeps counters in process memory.
	RedisAddr         string
	RedisPassword     string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// LogFile enables a rotated JSON log file in addition to stdout.
	LogFile string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "itemvault"),
		DBPassword: getEnv("DB_PASSWORD", "itemvault"),
		DBName:     getEnv("DB_NAME", "itemvault"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		LogFile: getEnv("LOG_FILE", ""),
	}

	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.RateLimitWindow = getDuration("RATE_LIMIT_WINDOW", time.Minute)

	reqStr := getEnv("RATE_LIMIT_REQUESTS", "10")
	reqs, err := strconv.Atoi(reqStr)
	if err != nil || reqs <= 0 {
		log.Printf("Warning: invalid RATE_LIMIT_REQUESTS value '%s', falling back to 10\n", reqStr)
		reqs = 10
	}
	config.RateLimitRequests = reqs

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, defaultValue.String())
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
