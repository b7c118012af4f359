package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stationdocs/internal/config"
)

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger is nil")
	}
	if GetLogger() != logger {
		t.Error("GetLogger should return the initialized logger")
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}

	logger.Info("test message", "key", "value")

	// Close log file to allow reading on Windows
	CloseLogFile()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal(content, &logEntry); err != nil {
		t.Fatalf("Log output is not valid JSON: %v", err)
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
	if logEntry["key"] != "value" {
		t.Errorf("Expected key='value', got %v", logEntry["key"])
	}
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level='INFO', got %v", logEntry["level"])
	}
}

func TestInitializeLoggerUnwritablePath(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	// A regular file where a directory is expected
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: filepath.Join(blocker, "app.log"),
	})
	if err == nil {
		t.Fatal("expected error for log path under a file")
	}
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "info", false)

	ctx := WithTraceID(context.Background(), "test-trace-123")
	logger.InfoContext(ctx, "traced message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Log output is not valid JSON: %v", err)
	}
	if logEntry["trace_id"] != "test-trace-123" {
		t.Errorf("Expected trace_id='test-trace-123', got %v", logEntry["trace_id"])
	}

	buf.Reset()
	logger.InfoContext(context.Background(), "untraced message")
	if strings.Contains(buf.String(), "trace_id") {
		t.Errorf("trace_id should be absent without a trace in context: %s", buf.String())
	}
}

func TestTraceIDSurvivesWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "info", false).With("component", "pipeline").WithGroup("stage")

	ctx := WithTraceID(context.Background(), "abc")
	logger.InfoContext(ctx, "grouped", "name", "summarize")

	out := buf.String()
	if !strings.Contains(out, `"component":"pipeline"`) {
		t.Errorf("missing component attr: %s", out)
	}
	if !strings.Contains(out, `"trace_id":"abc"`) {
		t.Errorf("missing trace_id: %s", out)
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := parseLogLevel(tt.level); got != tt.expected {
				t.Errorf("parseLogLevel(%s) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "warn", false)

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	if GetTraceID(ctx) != "" {
		t.Error("empty context should have no trace ID")
	}

	ctx = EnsureTraceID(ctx)
	first := GetTraceID(ctx)
	if len(first) != 36 {
		t.Errorf("expected UUID trace ID, got %q", first)
	}

	ctx = EnsureTraceID(ctx)
	if GetTraceID(ctx) != first {
		t.Error("EnsureTraceID should keep an existing trace ID")
	}

	if GenerateTraceID() == GenerateTraceID() {
		t.Error("trace IDs should be unique")
	}
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, "info", false)

	WithComponent(base, "reader").Info("component message")
	if !strings.Contains(buf.String(), `"component":"reader"`) {
		t.Errorf("missing component: %s", buf.String())
	}

	buf.Reset()
	WithError(base, errors.New("boom")).Error("failed")
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("missing error: %s", buf.String())
	}

	if WithError(base, nil) != base {
		t.Error("WithError(nil) should return the same logger")
	}

	buf.Reset()
	ctx := WithTraceID(context.Background(), "ctx-trace")
	LoggerWithContext(ctx, base).Info("with context")
	if !strings.Contains(buf.String(), `"trace_id":"ctx-trace"`) {
		t.Errorf("missing trace_id: %s", buf.String())
	}
}
