package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/felixgeelhaar/chief/internal/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "default config", config: DefaultConfig()},
		{name: "development config", config: DevelopmentConfig()},
		{name: "json config", config: Config{Level: LevelDebug, Format: FormatJSON, Output: OutputStderr()}},
		{name: "zero config", config: Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.config)
			if logger == nil || logger.slog == nil {
				t.Fatal("expected logger, got nil")
			}
			if !logger.Enabled(context.Background(), tt.config.Level) {
				t.Errorf("expected level %v to be enabled", tt.config.Level)
			}
		})
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	levels := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		" error ": LevelError,
		"bogus":   LevelWarn,
	}
	for in, want := range levels {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if ParseFormat("JSON") != FormatJSON {
		t.Error("expected json format")
	}
	if ParseFormat("console") != FormatText {
		t.Error("expected text fallback")
	}
}

func TestConfigFromStrings(t *testing.T) {
	cfg := ConfigFromStrings("debug", "json")
	if cfg.Level != LevelDebug || cfg.Format != FormatJSON || !cfg.AddSource {
		t.Errorf("unexpected config: %+v", cfg)
	}

	cfg = ConfigFromStrings("", "")
	if cfg.Level != LevelWarn || cfg.Format != FormatText || cfg.AddSource {
		t.Errorf("unexpected default config: %+v", cfg)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: NewOutput(&buf)})

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Errorf("expected no output for debug/info at warn level, got: %s", buf.String())
	}

	logger.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("expected output for warn message")
	}
}

func TestTextFormatOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatText, Output: NewOutput(&buf)})

	logger.Info("listing worktrees", "count", 3)

	output := buf.String()
	for _, want := range []string{"listing worktrees", "count=3", "INFO"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  bool
		wantSuggs bool
	}{
		{name: "nil error"},
		{name: "plain error", err: fmt.Errorf("boom")},
		{name: "coded error", err: errors.New(errors.ErrCodeTasksParse, "bad"), wantCode: true},
		{name: "wrapped coded error with suggestions", err: fmt.Errorf("use: %w", errors.NewWorkspaceNotFoundError("x")), wantCode: true, wantSuggs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

			logger.WithError(tt.err).Info("test")

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to parse JSON: %v", err)
			}

			_, hasErr := entry["error"]
			if hasErr != (tt.err != nil) {
				t.Errorf("error field present = %v, want %v", hasErr, tt.err != nil)
			}
			if _, ok := entry["error_code"]; ok != tt.wantCode {
				t.Errorf("error_code present = %v, want %v", ok, tt.wantCode)
			}
			if _, ok := entry["suggestions"]; ok != tt.wantSuggs {
				t.Errorf("suggestions present = %v, want %v", ok, tt.wantSuggs)
			}
		})
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Fatal("nil error should not be logged")
	}

	logger.LogError(errors.Wrap(errors.ErrCodeConfigParse, "failed to parse config.json", fmt.Errorf("unexpected EOF")))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if entry["error_code"] != "STATE-001" {
		t.Errorf("expected STATE-001, got %v", entry["error_code"])
	}
	if entry["cause"] != "unexpected EOF" {
		t.Errorf("expected cause, got %v", entry["cause"])
	}
	if entry["level"] != "ERROR" {
		t.Errorf("expected ERROR level, got %v", entry["level"])
	}
}

func TestWithAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

	logger.With("worktree", "login-ab12cd34").WithGroup("tasks").Info("progress", "completed", 2)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if entry["worktree"] != "login-ab12cd34" {
		t.Errorf("expected worktree attribute, got %v", entry["worktree"])
	}
	group, ok := entry["tasks"].(map[string]interface{})
	if !ok || group["completed"] != float64(2) {
		t.Errorf("expected grouped attribute, got %v", entry["tasks"])
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	if logger.Enabled(context.Background(), LevelWarn) {
		t.Error("discard logger should drop warnings")
	}
}
