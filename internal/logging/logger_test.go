package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNew_FiltersByLevelAndUsesSeparator(t *testing.T) {
	var buf bytes.Buffer
	logger := New(zapcore.WarnLevel, &buf)

	logger.Info("hidden")
	logger.Warn("analysis failed", zap.String("message", "Service unavailable"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered, got %q", out)
	}
	if !strings.Contains(out, " | WARN | ") || !strings.Contains(out, "analysis failed") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nutriform.log")

	logger, closeLog, err := NewLogger("debug", path)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Debug("state transition")
	_ = logger.Sync()
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "state transition") {
		t.Fatalf("expected entry in log file, got %q", data)
	}

	// Writes after close never reach the file.
	logger.Debug("after close")
	_ = logger.Sync()
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "after close") {
		t.Fatalf("expected file closed, got %q", data)
	}
}

func TestNewLogger_DefaultsToStderr(t *testing.T) {
	logger, closeLog, err := NewLogger("warn", "")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer closeLog()
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info disabled at warn level")
	}
}
