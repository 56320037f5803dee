// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/lattice-grouper/internal/grouper"
	"github.com/ironsheep/lattice-grouper/internal/logging"
)

// Config holds server configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Grouper holds the options new grouper sessions start with.
	Grouper grouper.Options

	// OCRLanguage is the Tesseract language used by grouper_classify.
	OCRLanguage string
}

// optionEnv maps grouper option names to their environment variables.
var optionEnv = []struct{ option, env string }{
	{"maxrange", "GROUPER_MAXRANGE"},
	{"maxdist", "GROUPER_MAXDIST"},
	{"maxaspect", "GROUPER_MAXASPECT"},
	{"maxwidth", "GROUPER_MAXWIDTH"},
	{"fullheight", "GROUPER_FULLHEIGHT"},
	{"checkorder", "GROUPER_CHECKORDER"},
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:    getEnvOrDefault("GROUPER_LOG_LEVEL", "info"),
		Grouper:     grouper.DefaultOptions(),
		OCRLanguage: getEnvOrDefault("GROUPER_OCR_LANGUAGE", "eng"),
	}
	for _, o := range optionEnv {
		value := strings.TrimSpace(os.Getenv(o.env))
		if value == "" {
			continue
		}
		if err := cfg.Grouper.Set(o.option, value); err != nil {
			return nil, fmt.Errorf("%s: %w", o.env, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("GROUPER_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.OCRLanguage == "" {
		return errors.New("GROUPER_OCR_LANGUAGE must not be empty")
	}
	return c.Grouper.Validate()
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
