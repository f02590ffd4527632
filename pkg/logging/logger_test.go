package logging

import (
	"os"
	"strings"
	"sync"
	"testing"
)

// setupTestDir points the package at a temporary log directory and resets
// the global once-state so each test starts fresh.
func setupTestDir(t *testing.T) {
	t.Helper()

	tempDir := t.TempDir()

	origLogDir := logDir
	origInitErr := initErr
	origRunID := runID

	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	initOnce.Do(func() {}) // mark done so initLogDirectory keeps tempDir
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = sync.Once{}
		runID = origRunID
		runIDOnce = sync.Once{}
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("session")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "session" {
		t.Errorf("Expected component 'session', got %q", logger.component)
	}

	if logger.runID == "" {
		t.Error("Expected non-empty run ID")
	}

	if logger.logPath == "" {
		t.Error("Expected non-empty log path")
	}
}

func TestLoggerLevels(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("flows")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debugf("debug %d", 1)
	logger.Infof("info %s", "message")
	logger.Warnf("warn")
	logger.Errorf("error")
	logger.Close()

	data, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)
	for _, want := range []string{"[DEBUG] debug 1", "[INFO] info message", "[WARN] warn", "[ERROR] error", "[flows]"} {
		if !strings.Contains(content, want) {
			t.Errorf("Log file missing %q:\n%s", want, content)
		}
	}
}

func TestLoggerCloseIdempotent(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("main")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestSharedRunID(t *testing.T) {
	setupTestDir(t)

	a, err := NewLogger("a")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer a.Close()

	b, err := NewLogger("b")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer b.Close()

	if a.RunID() != b.RunID() {
		t.Errorf("Loggers should share the process run ID: %q != %q", a.RunID(), b.RunID())
	}

	if a.LogPath() != b.LogPath() {
		t.Errorf("Loggers should share one log file: %q != %q", a.LogPath(), b.LogPath())
	}
}
