package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/kestrelworks/redline/pkg/logging"
)

func TestLevelValidate(t *testing.T) {
	for _, level := range []logging.Level{
		logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError,
	} {
		if err := level.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v", level, err)
		}
	}

	if err := logging.Level("verbose").Validate(); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("bogus"), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.ToSlogLevel(); got != tt.want {
			t.Errorf("ToSlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestFormatValidate(t *testing.T) {
	if err := logging.FormatJSON.Validate(); err != nil {
		t.Errorf("Validate(json) = %v", err)
	}
	if err := logging.Format("xml").Validate(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&logging.Config{
		Level:  logging.LevelInfo,
		Format: logging.FormatJSON,
	}, &buf)

	logger.Info("version created", "version_number", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "version created" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["version_number"] != float64(3) {
		t.Errorf("version_number = %v", entry["version_number"])
	}
}

func TestNewWriterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&logging.Config{
		Level:  logging.LevelWarn,
		Format: logging.FormatText,
	}, &buf)

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(out, "emitted") {
		t.Error("warn entry missing")
	}
}

func TestConfigFinalize(t *testing.T) {
	cfg := logging.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Level != logging.LevelInfo || cfg.Format != logging.FormatText {
		t.Errorf("defaults = %+v", cfg)
	}

	bad := logging.Config{Level: "verbose"}
	if err := bad.Finalize(); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestConfigFinalize_EnvOverride(t *testing.T) {
	t.Setenv(logging.EnvLogLevel, "debug")
	t.Setenv(logging.EnvLogFormat, "json")

	cfg := logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Level != logging.LevelDebug || cfg.Format != logging.FormatJSON {
		t.Errorf("cfg = %+v, want env overrides applied", cfg)
	}
}

func TestConfigMerge(t *testing.T) {
	base := logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	base.Merge(&logging.Config{Level: logging.LevelError})

	if base.Level != logging.LevelError {
		t.Errorf("Level = %q, want error", base.Level)
	}
	if base.Format != logging.FormatText {
		t.Errorf("Format = %q, want unchanged", base.Format)
	}
}
