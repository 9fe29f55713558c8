package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/quizforge/core/generate"
	"github.com/leofalp/quizforge/internal/utils"
	"github.com/leofalp/quizforge/providers/workflow"
)

// LogLevel controls how much detail the logging middleware emits per run.
type LogLevel int

const (
	// LogLevelMinimal logs only the duration and the outcome.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds the user, prompt size, run ID and payload size.
	LogLevelStandard

	// LogLevelVerbose adds the prompt and the payload, each truncated.
	//
	// WARNING: generated payloads may contain user-provided text. Use only for
	// local debugging.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// NewLoggingMiddleware logs before and after every workflow run. The logger
// must not be nil; pass slog.Default() when no custom logger is configured.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) generate.Middleware {
	return func(next generate.RunFunc) generate.RunFunc {
		return func(ctx context.Context, request workflow.RunRequest) (*workflow.RunResponse, error) {
			logger.InfoContext(ctx, "workflow run", buildRequestAttrs(request, level)...)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "workflow run failed",
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "workflow run completed",
				buildResponseAttrs(response, elapsed, level)...,
			)
			return response, nil
		}
	}
}

func buildRequestAttrs(request workflow.RunRequest, level LogLevel) []any {
	var attrs []any
	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.String("user", request.User),
			slog.Int("prompt_length", len(request.Prompt)),
		)
	}
	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("prompt", utils.TruncateString(request.Prompt, truncateLen)))
	}
	return attrs
}

func buildResponseAttrs(response *workflow.RunResponse, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{slog.Duration("duration", elapsed)}
	if response == nil {
		return attrs
	}
	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.String("run_id", response.RunID),
			slog.String("payload_key", response.PayloadKey),
			slog.Int("payload_length", len(response.Payload)),
		)
	}
	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("payload", utils.TruncateString(response.Payload, truncateLen)))
	}
	return attrs
}
