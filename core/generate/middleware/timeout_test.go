package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leofalp/quizforge/providers/workflow"
)

// ========== Helpers ==========

// makeRunFunc returns a RunFunc that sleeps for the given duration before
// returning, simulating a slow workflow.
func makeRunFunc(sleep time.Duration, resp *workflow.RunResponse, err error) func(context.Context, workflow.RunRequest) (*workflow.RunResponse, error) {
	return func(ctx context.Context, _ workflow.RunRequest) (*workflow.RunResponse, error) {
		select {
		case <-time.After(sleep):
			return resp, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ========== Timeout tests ==========

func TestTimeoutMiddleware_CompletesBeforeTimeout(t *testing.T) {
	fast := makeRunFunc(0, &workflow.RunResponse{Payload: "ok"}, nil)

	chain := NewTimeoutMiddleware(100 * time.Millisecond)(fast)

	resp, err := chain(context.Background(), workflow.RunRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Payload != "ok" {
		t.Errorf("expected 'ok', got %q", resp.Payload)
	}
}

func TestTimeoutMiddleware_ExceedsTimeout(t *testing.T) {
	slow := makeRunFunc(200*time.Millisecond, nil, nil)

	chain := NewTimeoutMiddleware(20 * time.Millisecond)(slow)

	_, err := chain(context.Background(), workflow.RunRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestTimeoutMiddleware_CallerDeadlineWins(t *testing.T) {
	slow := makeRunFunc(200*time.Millisecond, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	chain := NewTimeoutMiddleware(time.Minute)(slow)

	start := time.Now()
	_, err := chain(ctx, workflow.RunRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("caller deadline ignored, took %v", elapsed)
	}
}

func TestTimeoutMiddleware_DisabledForNonPositive(t *testing.T) {
	var hasDeadline bool
	next := func(ctx context.Context, _ workflow.RunRequest) (*workflow.RunResponse, error) {
		_, hasDeadline = ctx.Deadline()
		return &workflow.RunResponse{}, nil
	}

	chain := NewTimeoutMiddleware(0)(next)
	if _, err := chain(context.Background(), workflow.RunRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasDeadline {
		t.Error("expected no deadline when timeout is zero")
	}
}
