package korin

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	logger := Logger()
	if logger == nil {
		t.Fatal("Logger returned nil")
	}
	if logger.Enabled(nil, slog.LevelError) {
		t.Error("default logger should report all levels disabled")
	}
}

func TestSetLoggerReplacesLogger(t *testing.T) {
	defer SetLogger(nil)

	var buffer bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buffer, nil)))

	Logger().Info("adapter selected", "name", "test")
	if !strings.Contains(buffer.String(), "adapter selected") {
		t.Errorf("log output missing message: %q", buffer.String())
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	var buffer bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buffer, nil)))
	SetLogger(nil)

	Logger().Error("dropped")
	if buffer.Len() != 0 {
		t.Errorf("output after reset: %q", buffer.String())
	}
}
