package config

import "hrconsole/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" env:"HRCONSOLE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format     string          `yaml:"format" env:"HRCONSOLE_LOG_FORMAT" validate:"oneof=json text"`
	DebugMode  bool            `yaml:"debug_mode" env:"HRCONSOLE_DEBUG"` // Master toggle - false = no logging (production)
	Categories map[string]bool `yaml:"categories,omitempty"`             // Per-category toggles
}

// Settings converts the config into logging.Settings.
func (c *LoggingConfig) Settings() logging.Settings {
	return logging.Settings{
		DebugMode:  c.DebugMode,
		Categories: c.Categories,
		Level:      c.Level,
		JSONFormat: c.Format == "json",
	}
}
