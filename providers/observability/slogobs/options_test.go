package slogobs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	observer := New(WithFormat(FormatJSON), WithLevel(slog.LevelInfo), WithOutput(&buf))

	observer.Logger().Info("hello", "key", "value")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "hello" || record["key"] != "value" {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	observer := New(WithFormat(FormatText), WithLevel(slog.LevelInfo), WithOutput(&buf))

	observer.Logger().Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected DEBUG record to be filtered, got %q", buf.String())
	}
}

func TestNew_WithLoggerTakesPrecedence(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var ignored bytes.Buffer

	observer := New(WithLogger(logger), WithOutput(&ignored))
	observer.Logger().Info("routed")

	if !strings.Contains(buf.String(), "routed") {
		t.Errorf("expected record in provided logger output, got %q", buf.String())
	}
	if ignored.Len() != 0 {
		t.Errorf("expected WithOutput to be ignored, got %q", ignored.String())
	}
}
