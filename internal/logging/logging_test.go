package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNoneLevelDiscardsEverything(t *testing.T) {
	logger, closeFn, err := New(Config{Console: LevelNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	logger.Info("should not appear anywhere")
}

func TestFileDestinationIsCreatedAndWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	logger, closeFn, err := New(Config{Console: LevelNone, File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("engine started")
	logger.Sync()
	if err := closeFn(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected the file log to contain the written entry")
	}
}

func TestDebugLevelEnablesConsoleOutput(t *testing.T) {
	lowCore, highCore := consoleCores(LevelDebug, false)
	if lowCore == nil || highCore == nil {
		t.Fatal("expected non-nil cores for debug level")
	}
	if !highCore.Enabled(zapcore.ErrorLevel) {
		t.Fatal("expected the high-priority core to accept error-level entries")
	}
}
