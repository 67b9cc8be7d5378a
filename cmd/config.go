package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"orders/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

const (
	IdempotencyBackendPostgres = "postgres"
	IdempotencyBackendRedis    = "redis"
)

type Config struct {
	HTTPPort    string
	ServiceName string
	LogLevel    slog.Level

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	IdempotencyBackend string
	IdempotencyTTL     time.Duration
	ReaperSchedule     string
	RedisAddr          string

	StoreTimeout time.Duration
}

// DBSettings returns the connection parameters for postgres.Open.
func (c Config) DBSettings() postgres.Settings {
	return postgres.Settings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		ServiceName:        getEnv("SERVICE_NAME", "order-service"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBName:             getEnv("DB_NAME", "orders"),
		DBSslMode:          getEnv("DB_SSLMODE", "disable"),
		IdempotencyBackend: strings.ToLower(getEnv("IDEMPOTENCY_BACKEND", IdempotencyBackendPostgres)),
		ReaperSchedule:     getEnv("IDEMPOTENCY_REAPER_SCHEDULE", "@every 1m"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
	}

	var problems []error

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		problems = append(problems, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	ttl, err := getSeconds("IDEMPOTENCY_TTL_SECONDS", 86400)
	if err != nil {
		problems = append(problems, err)
	}
	cfg.IdempotencyTTL = ttl

	timeout, err := getSeconds("STORE_TIMEOUT_SECONDS", 5)
	if err != nil {
		problems = append(problems, err)
	}
	cfg.StoreTimeout = timeout

	switch cfg.IdempotencyBackend {
	case IdempotencyBackendPostgres, IdempotencyBackendRedis:
	default:
		problems = append(problems, fmt.Errorf("IDEMPOTENCY_BACKEND: unknown backend %q", cfg.IdempotencyBackend))
	}

	if err = errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getSeconds(key string, fallback int) (time.Duration, error) {
	raw := getEnv(key, strconv.Itoa(fallback))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: %q is not a positive number of seconds", key, raw)
	}
	return time.Duration(n) * time.Second, nil
}
