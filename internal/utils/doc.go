// Package utils provides shared low-level helpers used throughout the
// quizforge internals: a synchronous JSON POST helper that reports non-2xx
// responses as [*HTTPError], string truncation for log output, and a simple
// elapsed-time [Timer].
package utils
