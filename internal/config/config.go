package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBDSN string

	MetricsEnabled bool
	MetricsToken   string

	WriteLimitPerMin int
}

// New loads a .env file if one exists, then reads the environment.
// An empty DB_DSN selects the in-memory store.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             "8080",
		WriteLimitPerMin: 120,
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.DBDSN = os.Getenv("DB_DSN")
	cfg.MetricsToken = os.Getenv("METRICS_TOKEN")

	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MetricsEnabled = b
		}
	}

	if v := os.Getenv("WRITE_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WriteLimitPerMin = n
		}
	}

	return cfg
}
