package middleware

import (
	"context"
	"time"

	"github.com/leofalp/quizforge/core/generate"
	"github.com/leofalp/quizforge/providers/workflow"
)

// NewTimeoutMiddleware enforces a deadline on each workflow run. A
// non-positive timeout disables the middleware. If the caller's context
// already has a shorter deadline, that one wins.
func NewTimeoutMiddleware(timeout time.Duration) generate.Middleware {
	return func(next generate.RunFunc) generate.RunFunc {
		if timeout <= 0 {
			return next
		}
		return func(ctx context.Context, request workflow.RunRequest) (*workflow.RunResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
