// Package slogobs provides an observability.Provider implementation backed by
// Go's standard library log/slog package.
// Spans and metric updates are emitted as DEBUG records; log calls map onto
// the matching slog levels. The main entry point is [New]; output format and
// log level can be tuned with [WithFormat], [WithLevel], [WithOutput] and
// [WithLogger], or through the QUIZFORGE_LOG_FORMAT and QUIZFORGE_LOG_LEVEL
// environment variables.
package slogobs
