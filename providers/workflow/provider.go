package workflow

import (
	"context"
	"fmt"
	"net/http"
)

// RunRequest is one workflow invocation.
type RunRequest struct {
	// Prompt is the natural-language instruction passed to the workflow.
	Prompt string

	// Inputs are extra workflow variables sent alongside the prompt.
	Inputs map[string]string

	// User identifies the end user towards the upstream engine.
	User string
}

// RunResponse is the outcome of a workflow run.
type RunResponse struct {
	// RunID is the upstream run identifier, when reported.
	RunID string

	// Payload is the raw text result.
	Payload string

	// PayloadKey names the response field Payload was read from; empty when
	// no known field carried text.
	PayloadKey string
}

// Provider runs workflows on an upstream engine.
type Provider interface {
	// Run executes the workflow once and returns its raw text result.
	// Non-success upstream answers are reported as *UpstreamError.
	Run(ctx context.Context, request RunRequest) (*RunResponse, error)

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}

// UpstreamError reports a non-success answer from the workflow engine. The
// status code and message are forwarded to callers unchanged.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream workflow error (status %d): %s", e.StatusCode, e.Message)
}
