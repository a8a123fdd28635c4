package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with optional fields so a YAML file only
// overrides what it names.
type fileConfig struct {
	ServerAddress      *string  `yaml:"server_address"`
	Environment        *string  `yaml:"environment"`
	LogLevel           *string  `yaml:"log_level"`
	DefaultPageSize    *int     `yaml:"default_page_size"`
	MaxPageSize        *int     `yaml:"max_page_size"`
	SeedFile           *string  `yaml:"seed_file"`
	DataFile           *string  `yaml:"data_file"`
	LimitsFile         *string  `yaml:"limits_file"`
	EnableCORS         *bool    `yaml:"enable_cors"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// applyFile overlays values from a YAML configuration file.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ServerAddress != nil {
		c.ServerAddress = *fc.ServerAddress
	}
	if fc.Environment != nil {
		c.Environment = *fc.Environment
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	if fc.DefaultPageSize != nil {
		c.DefaultPageSize = *fc.DefaultPageSize
	}
	if fc.MaxPageSize != nil {
		c.MaxPageSize = *fc.MaxPageSize
	}
	if fc.SeedFile != nil {
		c.SeedFile = *fc.SeedFile
	}
	if fc.DataFile != nil {
		c.DataFile = *fc.DataFile
	}
	if fc.LimitsFile != nil {
		c.LimitsFile = *fc.LimitsFile
	}
	if fc.EnableCORS != nil {
		c.EnableCORS = *fc.EnableCORS
	}
	if len(fc.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = fc.CORSAllowedOrigins
	}
	return nil
}
