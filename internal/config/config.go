// Package config handles application configuration loading and persistence.
package config

import (
	"github.com/forgecad/scadview/pkg/convert"
)

// Config holds all application settings.
type Config struct {
	Conversion convert.Config `yaml:"conversion"`
	Window     WindowConfig   `yaml:"window"`
	Logging    LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds the desktop window settings.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Conversion: convert.DefaultConfig(),
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
