package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewSlogAdapter_WithNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter == nil {
		t.Fatal("NewSlogAdapter returned nil")
	}
	if adapter.logger == nil {
		t.Error("adapter.logger should not be nil when created with nil")
	}
}

func TestNewSlogAdapter_WithLogger(t *testing.T) {
	logger := slog.Default()
	adapter := NewSlogAdapter(logger)
	if adapter == nil {
		t.Fatal("NewSlogAdapter returned nil")
	}
	if adapter.logger != logger {
		t.Error("adapter.logger should be the provided logger")
	}
}

func TestSlogAdapter_InfoIsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "info", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	NewSlogAdapter(logger).Info("wake", "now", "2026-01-01")
	if buf.Len() != 0 {
		t.Errorf("scheduler info should be logged at debug level, got %q", buf.String())
	}
}

func TestSlogAdapter_Error(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "info", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	NewSlogAdapter(logger).Error(errors.New("boom"), "job failed", "entry", 1)

	out := buf.String()
	if !strings.Contains(out, "job failed") || !strings.Contains(out, "error=boom") || !strings.Contains(out, "entry=1") {
		t.Errorf("unexpected error output: %q", out)
	}
}

func TestSlogAdapter_Logger(t *testing.T) {
	logger := slog.Default()
	adapter := NewSlogAdapter(logger)
	if adapter.Logger() != logger {
		t.Error("Logger() should return the underlying logger")
	}
}
