package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names for retention configuration overrides.
const (
	EnvRetentionDays    = "RETENTION_DAYS"
	EnvRetentionEnabled = "RETENTION_ENABLED"
)

// RetentionConfig controls the background retention sweeper.
type RetentionConfig struct {
	Enabled       bool   `toml:"enabled"`
	Days          int    `toml:"days"`
	SweepInterval string `toml:"sweep_interval"`
}

// SweepIntervalDuration parses and returns the sweep interval.
func (c *RetentionConfig) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *RetentionConfig) Finalize() error {
	if c.Days == 0 {
		c.Days = 90
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "1h"
	}

	if v := os.Getenv(EnvRetentionDays); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			c.Days = days
		}
	}
	if v := os.Getenv(EnvRetentionEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}

	if c.Days < 1 {
		return fmt.Errorf("days must be positive")
	}
	if _, err := time.ParseDuration(c.SweepInterval); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *RetentionConfig) Merge(overlay *RetentionConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Days != 0 {
		c.Days = overlay.Days
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
}
