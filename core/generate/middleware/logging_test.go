package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/quizforge/providers/workflow"
)

// testLogger creates an slog.Logger that writes to a *bytes.Buffer so tests
// can inspect emitted log lines.
func testLogger(buf *bytes.Buffer) *slog.Logger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler)
}

func successRun(_ context.Context, _ workflow.RunRequest) (*workflow.RunResponse, error) {
	return &workflow.RunResponse{
		RunID:      "run-42",
		Payload:    "What is 2+2? |-> 4",
		PayloadKey: "outputs.result",
	}, nil
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	request := workflow.RunRequest{Prompt: "Generate 5 questions", User: "teacher-1"}

	tests := []struct {
		name    string
		level   LogLevel
		want    []string
		notWant []string
	}{
		{
			name:    "minimal",
			level:   LogLevelMinimal,
			want:    []string{"workflow run completed", "duration="},
			notWant: []string{"run-42", "teacher-1", "prompt="},
		},
		{
			name:    "standard",
			level:   LogLevelStandard,
			want:    []string{"run_id=run-42", "user=teacher-1", "payload_length=18", "payload_key=outputs.result"},
			notWant: []string{"prompt=", "payload="},
		},
		{
			name:  "verbose",
			level: LogLevelVerbose,
			want:  []string{"prompt=\"Generate 5 questions\"", "payload=\"What is 2+2? |-> 4\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			chain := NewLoggingMiddleware(testLogger(buf), tt.level)(successRun)

			if _, err := chain(context.Background(), request); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			output := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(output, s) {
					t.Errorf("expected %q in log, got:\n%s", s, output)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(output, s) {
					t.Errorf("did not expect %q in log, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestLoggingMiddleware_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	upstreamErr := &workflow.UpstreamError{StatusCode: 401, Message: "invalid key"}
	next := func(_ context.Context, _ workflow.RunRequest) (*workflow.RunResponse, error) {
		return nil, upstreamErr
	}

	chain := NewLoggingMiddleware(testLogger(buf), LogLevelStandard)(next)

	_, err := chain(context.Background(), workflow.RunRequest{})
	if !errors.Is(err, upstreamErr) {
		t.Fatalf("expected upstream error to pass through, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "level=ERROR") || !strings.Contains(output, "workflow run failed") {
		t.Errorf("expected error log entry, got:\n%s", output)
	}
	if !strings.Contains(output, "invalid key") {
		t.Errorf("expected error message in log, got:\n%s", output)
	}
}

func TestLoggingMiddleware_VerboseTruncatesPayload(t *testing.T) {
	buf := &bytes.Buffer{}
	long := strings.Repeat("x", truncateLen+100)
	next := func(_ context.Context, _ workflow.RunRequest) (*workflow.RunResponse, error) {
		return &workflow.RunResponse{Payload: long}, nil
	}

	chain := NewLoggingMiddleware(testLogger(buf), LogLevelVerbose)(next)
	if _, err := chain(context.Background(), workflow.RunRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(buf.String(), long) {
		t.Error("expected payload to be truncated")
	}
	if !strings.Contains(buf.String(), "truncated, total: 600 chars") {
		t.Errorf("expected truncation marker, got:\n%s", buf.String())
	}
}
