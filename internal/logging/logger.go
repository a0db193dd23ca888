// Package logging provides config-driven categorized file-based logging for hrconsole.
// Logs are written to .hrconsole/logs/ with separate files per category.
// Logging is controlled by debug_mode in the logging settings - when false, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config resolution
	CategoryImport   Category = "import"   // Batch loading of punch-log files
	CategoryParse    Category = "parse"    // Line/token processing
	CategoryExport   Category = "export"   // CSV/JSON export
	CategoryStore    Category = "store"    // Key-value persistence
	CategorySearches Category = "searches" // Saved searches
	CategoryWatch    Category = "watch"    // Drop-folder watcher
	CategoryUI       Category = "ui"       // Interactive browser
)

// Settings mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Settings struct {
	DebugMode  bool
	Categories map[string]bool
	Level      string
	JSONFormat bool
}

// Logger wraps a zap sugared logger bound to one category file.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	settings  Settings
	level     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	configMu  sync.RWMutex
)

// Initialize sets up the logging directory under the workspace.
// Should be called once at startup.
func Initialize(ws string, s Settings) error {
	if ws == "" {
		return fmt.Errorf("workspace path required")
	}

	configMu.Lock()
	settings = s
	level.SetLevel(parseLevel(s.Level))
	configMu.Unlock()

	if !s.DebugMode {
		return nil
	}

	dir := filepath.Join(ws, ".hrconsole", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	loggersMu.Lock()
	logsDir = dir
	loggersMu.Unlock()

	boot := Get(CategoryBoot)
	boot.Info("logging initialized: workspace=%s dir=%s level=%s", ws, dir, level.Level())
	if len(s.Categories) == 0 {
		boot.Debug("all categories enabled (no category filter)")
	}
	return nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !settings.DebugMode {
		return false
	}
	if settings.Categories == nil {
		return true
	}
	enabled, exists := settings.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	dir := logsDir
	loggersMu.RUnlock()

	if dir == "" {
		return &Logger{category: category}
	}

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	// Date prefix for easy rotation
	name := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		sugar:    zap.New(newCore(file)).With(zap.String("cat", string(category))).Sugar(),
	}
	loggers[category] = l
	return l
}

func newCore(file *os.File) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	configMu.RLock()
	jsonFormat := settings.JSONFormat
	configMu.RUnlock()

	var enc zapcore.Encoder
	if jsonFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewCore(enc, zapcore.AddSync(file), level)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// Enabled reports whether this logger writes anywhere.
func (l *Logger) Enabled() bool {
	return l.sugar != nil
}

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		if l.sugar != nil {
			_ = l.sugar.Sync()
		}
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
	logsDir = ""
}

// =============================================================================
// CONVENIENCE FUNCTIONS - no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// Import logs to the import category
func Import(format string, args ...interface{}) {
	Get(CategoryImport).Info(format, args...)
}

// ImportDebug logs debug to the import category
func ImportDebug(format string, args ...interface{}) {
	Get(CategoryImport).Debug(format, args...)
}

// ImportError logs error to the import category
func ImportError(format string, args ...interface{}) {
	Get(CategoryImport).Error(format, args...)
}

// ParseDebug logs debug to the parse category
func ParseDebug(format string, args ...interface{}) {
	Get(CategoryParse).Debug(format, args...)
}

// ParseWarn logs warning to the parse category
func ParseWarn(format string, args ...interface{}) {
	Get(CategoryParse).Warn(format, args...)
}

// Export logs to the export category
func Export(format string, args ...interface{}) {
	Get(CategoryExport).Info(format, args...)
}

// Store logs to the store category
func Store(format string, args ...interface{}) {
	Get(CategoryStore).Info(format, args...)
}

// StoreDebug logs debug to the store category
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debug(format, args...)
}

// StoreError logs error to the store category
func StoreError(format string, args ...interface{}) {
	Get(CategoryStore).Error(format, args...)
}

// Searches logs to the searches category
func Searches(format string, args ...interface{}) {
	Get(CategorySearches).Info(format, args...)
}

// Watch logs to the watch category
func Watch(format string, args ...interface{}) {
	Get(CategoryWatch).Info(format, args...)
}

// WatchDebug logs debug to the watch category
func WatchDebug(format string, args ...interface{}) {
	Get(CategoryWatch).Debug(format, args...)
}

// WatchError logs error to the watch category
func WatchError(format string, args ...interface{}) {
	Get(CategoryWatch).Error(format, args...)
}

// UIDebug logs debug to the ui category
func UIDebug(format string, args ...interface{}) {
	Get(CategoryUI).Debug(format, args...)
}

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
