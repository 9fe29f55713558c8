package generate

import (
	"errors"
	"strings"
)

// ErrNotConfigured is returned when no upstream provider is available, which
// happens when the workflow credentials are missing.
var ErrNotConfigured = errors.New("quiz generation is not configured")

// ValidationError reports missing or malformed request fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
