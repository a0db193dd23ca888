package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetState(t *testing.T) {
	t.Helper()
	CloseAll()
	configMu.Lock()
	settings = Settings{}
	configMu.Unlock()
	t.Cleanup(CloseAll)
}

func TestProductionModeWritesNothing(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	if err := Initialize(ws, Settings{DebugMode: false}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Import("should not be written")
	if Get(CategoryImport).Enabled() {
		t.Error("expected no-op logger in production mode")
	}
	if _, err := os.Stat(filepath.Join(ws, ".hrconsole", "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not exist in production mode")
	}
}

func TestCategoryFilesCreated(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	err := Initialize(ws, Settings{
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"watch": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Import("imported %d records", 3)
	Store("opened %s", "kv.db")
	Watch("suppressed")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	dir := filepath.Join(ws, ".hrconsole", "logs")

	data, err := os.ReadFile(filepath.Join(dir, date+"_import.log"))
	if err != nil {
		t.Fatalf("import log missing: %v", err)
	}
	if !strings.Contains(string(data), "imported 3 records") {
		t.Errorf("import log content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, date+"_store.log")); err != nil {
		t.Errorf("store log missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, date+"_watch.log")); !os.IsNotExist(err) {
		t.Error("disabled category should not create a file")
	}
}

func TestLevelFiltering(t *testing.T) {
	resetState(t)
	ws := t.TempDir()

	if err := Initialize(ws, Settings{DebugMode: true, Level: "warn", JSONFormat: true}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	ImportDebug("debug line")
	ImportError("error line")
	CloseAll()

	path := filepath.Join(ws, ".hrconsole", "logs", time.Now().Format("2006-01-02")+"_import.log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "debug line") {
		t.Error("debug line written at warn level")
	}
	if !strings.Contains(content, `"msg":"error line"`) {
		t.Errorf("expected JSON error entry, got %q", content)
	}
}

func TestInitializeRequiresWorkspace(t *testing.T) {
	resetState(t)
	if err := Initialize("", Settings{}); err == nil {
		t.Error("expected error for empty workspace")
	}
}

func TestTimerReturnsElapsed(t *testing.T) {
	resetState(t)
	timer := StartTimer(CategoryParse, "parse")
	time.Sleep(time.Millisecond)
	if d := timer.StopWithThreshold(time.Hour); d <= 0 {
		t.Errorf("elapsed = %v", d)
	}
}
