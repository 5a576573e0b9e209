package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment after
// an optional .env file is loaded.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// DefaultCompanyID is used when a request omits companyid.
	DefaultCompanyID int

	// KafkaBrokers enables event publishing when non-empty.
	KafkaBrokers []string

	LogLevel string
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             envOr("PORT", "8080"),
		DBHost:           envOr("DB_HOST", "localhost"),
		DBPort:           envOr("DB_PORT", "5432"),
		DBName:           envOr("DB_NAME", "accounting"),
		DBUser:           envOr("DB_USER", "postgres"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBSSLMode:        envOr("DB_SSLMODE", "disable"),
		DefaultCompanyID: 1,
		LogLevel:         envOr("LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("DEFAULT_COMPANY_ID"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("DEFAULT_COMPANY_ID must be a positive integer, got %q", raw)
		}
		cfg.DefaultCompanyID = id
	}

	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	return cfg, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
