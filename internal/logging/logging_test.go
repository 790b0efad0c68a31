package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("debug message should be filtered at INFO level")
	}

	logger.Info("info message")
	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Error("log should contain INFO level")
	}
	if !strings.Contains(output, "info message") {
		t.Error("log should contain the message")
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf).WithComponent("store")

	logger.Warn("persist failed")

	if !strings.Contains(buf.String(), "[store]") {
		t.Errorf("expected component 'store' in log, got: %s", buf.String())
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Info("saved", map[string]any{"tasks": 3, "key": "todos"})

	if !strings.Contains(buf.String(), "saved key=todos tasks=3") {
		t.Errorf("unexpected field order: %s", buf.String())
	}
}

func TestLogger_NilIsSilent(t *testing.T) {
	var logger *Logger
	logger.Info("nothing")
	logger.WithComponent("x").Error("still nothing")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" WARN ", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todo.log")
	logger, closer, err := OpenFile(path, LevelDebug)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	logger.Debug("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "DEBUG") {
		t.Errorf("expected DEBUG line, got %q", data)
	}
}
