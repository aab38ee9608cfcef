// Package config provides application configuration management with support
// for TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"fmt"
	"os"

	"github.com/kestrelworks/redline/pkg/database"
	"github.com/kestrelworks/redline/pkg/logging"
	"github.com/kestrelworks/redline/pkg/pagination"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"
)

// Config represents the root service configuration.
type Config struct {
	Server     ServerConfig      `toml:"server"`
	Database   database.Config   `toml:"database"`
	Logging    logging.Config    `toml:"logging"`
	CORS       CORSConfig        `toml:"cors"`
	Pagination pagination.Config `toml:"pagination"`
	Retention  RetentionConfig   `toml:"retention"`
}

// Load reads and parses the base configuration file, applies any
// environment-specific overlay, then finalizes every section.
func Load(path string) (*Config, error) {
	cfg, err := parse(path)
	if err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlay, err := parse(fmt.Sprintf(OverlayConfigPattern, env))
		if err != nil {
			return nil, fmt.Errorf("load overlay: %w", err)
		}
		cfg.merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Retention.Merge(&overlay.Retention)
}

func (c *Config) finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Database.Finalize(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := c.Pagination.Finalize(); err != nil {
		return fmt.Errorf("pagination config: %w", err)
	}
	if err := c.Retention.Finalize(); err != nil {
		return fmt.Errorf("retention config: %w", err)
	}
	return nil
}
