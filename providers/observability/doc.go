// Package observability defines the tracing, metrics and logging contracts
// used across quizforge. Components accept a [Provider] and stay agnostic of
// the backend; the slog-backed implementation lives in the slogobs
// sub-package.
//
// Attribute names and metric names shared between components are collected
// in semconv.go so log lines from the HTTP layer, the upstream client and the
// parser line up.
package observability
