package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Defaults applied when neither the environment nor a .env file sets a value.
const (
	DefaultStaleDays = 14
	DefaultSource    = "auto"
	DefaultOutput    = "dashboard.html"
)

// AppConfig holds the complete application configuration. Command-line flags
// override every field.
type AppConfig struct {
	StaleDays   int
	Source      string
	Output      string
	ProfileFile string
	Minify      bool
}

// Load reads .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. The executable's directory wins, as for an installed MCP server.
	exePath, err := os.Executable()
	if err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Then the working directory.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	cfg := &AppConfig{
		StaleDays:   getEnvInt("TICKETLENS_STALE_DAYS", DefaultStaleDays),
		Source:      getEnv("TICKETLENS_SOURCE", DefaultSource),
		Output:      getEnv("TICKETLENS_OUTPUT", DefaultOutput),
		ProfileFile: getEnv("TICKETLENS_PROFILE_FILE", ""),
		Minify:      getEnvBool("TICKETLENS_MINIFY", true),
	}
	if cfg.StaleDays < 0 {
		log.Warn().Int("staleDays", cfg.StaleDays).Msg("Negative TICKETLENS_STALE_DAYS, using default")
		cfg.StaleDays = DefaultStaleDays
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}
