package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"hrconsole/internal/attendance"
)

// Dir is the workspace-relative directory holding config, database and logs.
const Dir = ".hrconsole"

// FileName is the config file name inside Dir.
const FileName = "config.yaml"

// Config holds all hrconsole configuration.
type Config struct {
	Attendance AttendanceConfig `yaml:"attendance"`
	Store      StoreConfig      `yaml:"store"`
	Export     ExportConfig     `yaml:"export"`
	Watch      WatchConfig      `yaml:"watch"`
	UI         UIConfig         `yaml:"ui"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AttendanceConfig configures punch-log imports.
type AttendanceConfig struct {
	ParseMode          string   `yaml:"parse_mode" env:"HRCONSOLE_PARSE_MODE" validate:"oneof=lenient strict"`
	AllowedExtensions  []string `yaml:"allowed_extensions" env:"HRCONSOLE_ALLOWED_EXTENSIONS" validate:"min=1,dive,startswith=."`
	MaxConcurrentReads int      `yaml:"max_concurrent_reads" env:"HRCONSOLE_MAX_CONCURRENT_READS" validate:"min=1,max=64"`
}

// StoreConfig configures the saved-search database.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path" env:"HRCONSOLE_DB" validate:"required"`
}

// ExportConfig configures CSV export.
type ExportConfig struct {
	Directory string `yaml:"directory" env:"HRCONSOLE_EXPORT_DIR" validate:"required"`
}

// WatchConfig configures the drop-folder watcher.
type WatchConfig struct {
	Directory string `yaml:"directory" env:"HRCONSOLE_WATCH_DIR" validate:"required"`
	Debounce  string `yaml:"debounce" env:"HRCONSOLE_WATCH_DEBOUNCE" validate:"required"`
}

// UIConfig configures terminal rendering.
type UIConfig struct {
	Theme string `yaml:"theme" env:"HRCONSOLE_THEME" validate:"oneof=auto dark light"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Attendance: AttendanceConfig{
			ParseMode:          string(attendance.ModeLenient),
			AllowedExtensions:  []string{".dat"},
			MaxConcurrentReads: 4,
		},
		Store: StoreConfig{
			DatabasePath: filepath.Join(Dir, "hrconsole.db"),
		},
		Export: ExportConfig{
			Directory: "exports",
		},
		Watch: WatchConfig{
			Directory: "inbox",
			Debounce:  "500ms",
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config path for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, Dir, FileName)
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the
// process environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from a YAML file, then applies HRCONSOLE_*
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("invalid config: watch.debounce %q: %w", c.Watch.Debounce, err)
	}
	return nil
}

// ParseMode returns the configured attendance parse mode.
func (c *Config) ParseMode() attendance.Mode {
	if c.Attendance.ParseMode == string(attendance.ModeStrict) {
		return attendance.ModeStrict
	}
	return attendance.ModeLenient
}

// BatchOptions returns the import options for attendance.LoadBatch.
func (c *Config) BatchOptions() attendance.BatchOptions {
	opts := attendance.DefaultBatchOptions()
	opts.Mode = c.ParseMode()
	if len(c.Attendance.AllowedExtensions) > 0 {
		opts.AllowedExtensions = append([]string(nil), c.Attendance.AllowedExtensions...)
	}
	if c.Attendance.MaxConcurrentReads > 0 {
		opts.MaxConcurrentReads = c.Attendance.MaxConcurrentReads
	}
	return opts
}

// GetWatchDebounce returns the watcher debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// Resolve joins a workspace-relative path onto workspace. Absolute paths are returned unchanged.
func Resolve(workspace, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}
