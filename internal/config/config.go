package config

import (
	"os"
	"strconv"

	"github.com/danielxmed/nobra-calculator/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Metadata MetadataConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// MetadataConfig holds descriptor source settings for the file-backed catalogue
type MetadataConfig struct {
	Dir   string
	Watch bool
}

// DatabaseConfig holds optional database-backed catalogue settings.
// When URL is set the catalogue is read from Postgres instead of the
// metadata directory.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Metadata: MetadataConfig{
			Dir:   getEnvOrDefault("METADATA_DIR", "metadata"),
			Watch: getEnvBoolOrDefault("METADATA_WATCH", false),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(c *Config) error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if c.Database.URL == "" && c.Metadata.Dir == "" {
		return errors.ConfigInvalid("METADATA_DIR is required when DATABASE_URL is not set")
	}
	if c.Database.URL != "" && c.Metadata.Watch {
		return errors.ConfigInvalid("METADATA_WATCH requires the file-backed catalogue")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
