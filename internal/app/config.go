package app

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration from env (and .env if present)
type Config struct {
	SettingsFile string
	ReplayDir    string
	DataDir      string
	SaveFormat   string
	LogLevel     string // debug | info | warn | error
	LogFile      string
	Workers      int
}

// LoadConfig loads .env, then reads config from environment
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("error loading .env file", "error", err)
	}
	cfg := &Config{
		SettingsFile: getEnv("SETTINGS_FILE", "vt_setting.json"),
		ReplayDir:    getEnv("REPLAY_DIR", filepath.Join("data", "tq")),
		DataDir:      getEnv("DATA_DIR", "data"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      os.Getenv("LOG_FILE"),
		Workers:      1,
	}
	cfg.SaveFormat = getSaveFormat()
	if w := os.Getenv("WORKERS"); w != "" {
		if v, err := strconv.Atoi(w); err == nil && v > 0 {
			cfg.Workers = v
		}
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getSaveFormat() string {
	if v := os.Getenv("SAVE_FORMAT"); v != "" {
		return v
	}
	switch os.Getenv("PROFILE") {
	case "dev", "development":
		return "csv"
	default:
		return "parquet"
	}
}

// SaveBaseDir returns data/TQ
func (c *Config) SaveBaseDir() string {
	return filepath.Join(c.DataDir, "TQ")
}
