package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/quietstudy/studytrack/pkg/jwtx"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for token signing (base64 or raw)
	Issuer    string // Optional: issuer claim for tokens (default: studytrack)

	AccessTTL  time.Duration // Optional: access token lifetime (default: 1h)
	RefreshTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./studytrack.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Timezone     string // Optional: IANA timezone for day boundaries (default: Asia/Shanghai)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A local .env is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		JWTSecret:           os.Getenv("STUDYTRACK_JWT_SECRET"),
		Issuer:              getEnvOrDefault("STUDYTRACK_ISSUER", "studytrack"),
		AccessTTL:           getEnvDurationOrDefault("STUDYTRACK_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:          getEnvDurationOrDefault("STUDYTRACK_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:        getEnvOrDefault("STUDYTRACK_DATABASE_FILE", "studytrack.db"),
		PepperFile:          getEnvOrDefault("STUDYTRACK_PEPPER_FILE", "pepper"),
		Timezone:            getEnvOrDefault("STUDYTRACK_TIMEZONE", "Asia/Shanghai"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
