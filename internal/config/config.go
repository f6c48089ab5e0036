package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// devSessionSecret signs cookies outside production when SESSION_SECRET is unset.
const devSessionSecret = "dev-session-secret"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	HTTPAddr     string
	LogLevel     string

	UsersAPIBaseURL string
	UsersAPITimeout time.Duration

	SessionSecret string
	SessionTTL    time.Duration
	SessionStore  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DBDSN is optional; when empty the activity journal is disabled.
	DBDSN string

	// OperatorPasswordHash is an optional bcrypt hash; when set the screen requires login.
	OperatorPasswordHash string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}

	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	var err error
	cfg := &Config{}

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	// Production origins, comma separated (default: empty)
	cfg.ProdOrigins = splitList(getEnv("PROD_ORIGINS", ""))

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Remote users API
	cfg.UsersAPIBaseURL = getEnv("USERS_API_BASE_URL", "https://jsonplaceholder.typicode.com")
	cfg.UsersAPITimeout, err = getEnvAsDuration("USERS_API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid USERS_API_TIMEOUT: %w", err)
	}

	// Session secret is required in production for signing cookies
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("SESSION_SECRET is required")
		}
		cfg.SessionSecret = devSessionSecret
	}

	// Session TTL, parse as time.Duration (e.g. "30m", "12h").
	cfg.SessionTTL, err = getEnvAsDuration("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg.SessionStore = strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory))
	switch cfg.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE %q: must be %q or %q", cfg.SessionStore, SessionStoreMemory, SessionStoreRedis)
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "127.0.0.1:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg.DBDSN = os.Getenv("DB_DSN")
	cfg.OperatorPasswordHash = os.Getenv("OPERATOR_PASSWORD_HASH")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a positive time.Duration.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("env %s value %q must be positive", key, valStr)
	}

	return val, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
