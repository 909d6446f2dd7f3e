// Package config centralises runtime configuration for tally.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config captures runtime configuration values.
type Config struct {
	DataDir         string // logs and the default database live here
	DBPath          string
	Debug           bool
	IDFormat        string // uuid or nanoid
	BadgeWindowDays int    // trailing window for workout frequency badges
}

// DefaultBadgeWindowDays is the window used for workout frequency badges.
const DefaultBadgeWindowDays = 30

// Load reads environment variables into Config, applying defaults rooted at ~/.tally.
func Load() Config {
	dataDir := getEnv("TALLY_DATA_DIR", defaultDataDir())
	cfg := Config{
		DataDir:         dataDir,
		DBPath:          getEnv("TALLY_DB", filepath.Join(dataDir, "tally.db")),
		Debug:           getBoolEnv("TALLY_DEBUG", false),
		IDFormat:        strings.ToLower(getEnv("TALLY_ID_FORMAT", "uuid")),
		BadgeWindowDays: getIntEnv("TALLY_BADGE_WINDOW_DAYS", DefaultBadgeWindowDays),
	}
	if cfg.BadgeWindowDays <= 0 {
		cfg.BadgeWindowDays = DefaultBadgeWindowDays
	}
	return cfg
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tally"
	}
	return filepath.Join(homeDir, ".tally")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
