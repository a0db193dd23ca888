package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HRCONSOLE_PARSE_MODE", "strict")
	t.Setenv("HRCONSOLE_ALLOWED_EXTENSIONS", ".dat,.log")
	t.Setenv("HRCONSOLE_MAX_CONCURRENT_READS", "8")
	t.Setenv("HRCONSOLE_DB", "/tmp/hr.db")
	t.Setenv("HRCONSOLE_WATCH_DEBOUNCE", "2s")
	t.Setenv("HRCONSOLE_DEBUG", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "strict", cfg.Attendance.ParseMode)
	assert.Equal(t, []string{".dat", ".log"}, cfg.Attendance.AllowedExtensions)
	assert.Equal(t, 8, cfg.Attendance.MaxConcurrentReads)
	assert.Equal(t, "/tmp/hr.db", cfg.Store.DatabasePath)
	assert.Equal(t, 2*time.Second, cfg.GetWatchDebounce())
	assert.True(t, cfg.Logging.DebugMode)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  directory: from-file\nui:\n  theme: light\n"), 0644))
	t.Setenv("HRCONSOLE_EXPORT_DIR", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Export.Directory)
	assert.Equal(t, "light", cfg.UI.Theme, "unset variables leave file values alone")
}

func TestEnvOverridesBadValue(t *testing.T) {
	t.Setenv("HRCONSOLE_MAX_CONCURRENT_READS", "many")

	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("HRCONSOLE_THEME=light\n"), 0644))

	// Registers cleanup so the variable does not leak into other tests.
	t.Setenv("HRCONSOLE_THEME", "")
	require.NoError(t, os.Unsetenv("HRCONSOLE_THEME"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), dotenv))

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("HRCONSOLE_THEME=light\n"), 0644))
	t.Setenv("HRCONSOLE_THEME", "dark")

	require.NoError(t, LoadDotEnv(dotenv))
	assert.Equal(t, "dark", os.Getenv("HRCONSOLE_THEME"))
}
