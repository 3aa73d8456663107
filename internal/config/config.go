package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tasknity/tasknity-api/internal/constants"
)

type Config struct {
	Port          string
	GinMode       string
	LogLevel      string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPath        string
	JWTSecret     string
	JWTExpiresIn  time.Duration
	SessionSecret string
	RedisHost     string
	RedisPort     string
	OpenAIAPIKey  string
	CORSOrigins   []string

	// UsingFallbackSecret is set when JWT_SECRET was not provided.
	UsingFallbackSecret bool
}

// LoadEnvFile loads .env into the process environment when present.
// A missing file is not an error.
func LoadEnvFile(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
		}
	}
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "3006"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "tasknity"),
		DBPassword:    getEnv("DB_PASSWORD", "tasknity"),
		DBName:        getEnv("DB_NAME", "tasknity"),
		DBPath:        getEnv("DB_PATH", "tasknity.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiresIn:  getDuration("JWT_EXPIRES_IN", constants.DefaultTokenTTL),
		SessionSecret: getEnv("SESSION_SECRET", "default-session-secret-change-me"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:9002,http://localhost:3006")),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = constants.FallbackJWTSecret
		cfg.UsingFallbackSecret = true
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
