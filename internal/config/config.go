package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmrzaf/rowgen/internal/timeutil"
)

type Config struct {
	BindAddr   string
	LogLevel   string
	PresetsDir string
	// HistoryDB selects the request-history store: empty disables it, a
	// postgres:// DSN picks the Postgres repository, anything else is a
	// SQLite file path.
	HistoryDB  string
	DateWindow time.Duration
}

// Load reads configuration from the environment, with a .env file in
// the working directory filling in unset variables.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BindAddr:   getEnv("ROWGEN_BIND_ADDR", ":8080"),
		LogLevel:   getEnv("ROWGEN_LOG_LEVEL", "info"),
		PresetsDir: getEnv("ROWGEN_PRESETS_DIR", "./presets"),
		HistoryDB:  getEnv("ROWGEN_HISTORY_DB", ""),
		DateWindow: getDuration("ROWGEN_DATE_WINDOW", 30*24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := timeutil.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
