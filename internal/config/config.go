package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	Store     StoreConfig
	Quiz      QuizConfig
	Bootstrap BootstrapConfig
	Events    EventsConfig
}

type StoreConfig struct {
	Driver      string // memory, redis or postgres
	Namespace   string
	RedisURL    string
	DatabaseURL string
}

type QuizConfig struct {
	Mode              string // sequential or random
	RecordSubmissions bool
}

// BootstrapConfig is the administrator created when no admin exists
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

type EventsConfig struct {
	KafkaBrokers []string // empty means the in-process bus
	Topic        string
}

// LoadConfig reads the environment, after loading .env when present
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			Namespace:   getEnv("STORE_NAMESPACE", "bp_"),
			RedisURL:    os.Getenv("REDIS_URL"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Quiz: QuizConfig{
			Mode: strings.ToLower(getEnv("QUIZ_MODE", "sequential")),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    strings.ToLower(getEnv("BOOTSTRAP_ADMIN_EMAIL", "admin@bank.com")),
			AdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", "admin123"),
		},
		Events: EventsConfig{
			KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:        getEnv("EVENTS_TOPIC", "portal.events"),
		},
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.Store.Driver {
	case "memory":
	case "redis":
		if cfg.Store.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis store driver")
		}
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store driver")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want memory, redis or postgres", cfg.Store.Driver)
	}

	switch cfg.Quiz.Mode {
	case "sequential", "random":
	default:
		return nil, fmt.Errorf("invalid QUIZ_MODE %q: want sequential or random", cfg.Quiz.Mode)
	}

	// Only the sequential portal recorded answers by default
	record, err := getBool("QUIZ_RECORD_SUBMISSIONS", cfg.Quiz.Mode == "sequential")
	if err != nil {
		return nil, err
	}
	cfg.Quiz.RecordSubmissions = record

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
