package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"library-catalog/library"
)

// Config holds runtime settings. Nothing here changes catalog behaviour.
type Config struct {
	Store        library.StoreKind
	LogLevel     string
	MaskPassword bool
}

// LoadEnvFiles loads .env into the environment without overriding variables
// that are already set.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
}

// Load reads the configuration from the environment with defaults applied.
// Call Validate once flags have been applied on top.
func Load() *Config {
	return &Config{
		Store:        library.StoreKind(getEnv("LIBRARY_STORE", string(library.StoreMemory))),
		LogLevel:     getEnv("LIBRARY_LOG_LEVEL", "warn"),
		MaskPassword: getEnvAsBool("LIBRARY_MASK_PASSWORD", true),
	}
}

// Validate rejects unknown store kinds and log levels.
func (c *Config) Validate() error {
	switch c.Store {
	case library.StoreMemory, library.StoreSQLite:
	default:
		return fmt.Errorf("invalid store %q: want memory or sqlite", c.Store)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// NewLogger builds the stderr text logger for the configured level.
func (c *Config) NewLogger() *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return defaultValue
}
