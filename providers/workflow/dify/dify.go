package dify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/leofalp/quizforge/internal/utils"
	"github.com/leofalp/quizforge/providers/observability"
	"github.com/leofalp/quizforge/providers/workflow"
)

const (
	// DefaultBaseURL is the hosted Dify API.
	DefaultBaseURL = "https://api.dify.ai/v1"

	// DefaultUser is sent when a request carries no user identifier.
	DefaultUser = "quizforge"

	workflowRunEndpoint  = "/workflows/run"
	responseModeBlocking = "blocking"

	// PromptInput is the workflow variable that receives the prompt.
	PromptInput = "query"
)

// Provider implements workflow.Provider for Dify.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a Dify provider for the given credentials. An empty baseURL
// selects [DefaultBaseURL].
func New(apiKey, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

var _ workflow.Provider = (*Provider)(nil)

// WithAPIKey sets the API key for the provider
func (p *Provider) WithAPIKey(apiKey string) workflow.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API. An empty value restores
// [DefaultBaseURL].
func (p *Provider) WithBaseURL(baseURL string) workflow.Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

// WithHttpClient sets a custom HTTP client
func (p *Provider) WithHttpClient(httpClient *http.Client) workflow.Provider {
	p.client = httpClient
	return p
}

type runRequest struct {
	Inputs       map[string]string `json:"inputs"`
	ResponseMode string            `json:"response_mode"`
	User         string            `json:"user"`
}

// Run executes the workflow in blocking mode.
func (p *Provider) Run(ctx context.Context, request workflow.RunRequest) (*workflow.RunResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("API key is not set")
	}

	inputs := make(map[string]string, len(request.Inputs)+1)
	for key, value := range request.Inputs {
		inputs[key] = value
	}
	inputs[PromptInput] = request.Prompt

	user := request.User
	if user == "" {
		user = DefaultUser
	}

	body, err := utils.DoPostSync[map[string]interface{}](ctx, p.client, p.baseURL+workflowRunEndpoint, p.apiKey, runRequest{
		Inputs:       inputs,
		ResponseMode: responseModeBlocking,
		User:         user,
	})
	if err != nil {
		var httpErr *utils.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &workflow.UpstreamError{
				StatusCode: httpErr.StatusCode,
				Message:    errorMessage(httpErr),
			}
		}
		return nil, err
	}

	payload, key := ExtractPayload(*body)
	response := &workflow.RunResponse{
		RunID:      runID(*body),
		Payload:    payload,
		PayloadKey: key,
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(
			observability.String(observability.AttrWorkflowProvider, "dify"),
			observability.String(observability.AttrWorkflowRunID, response.RunID),
			observability.String(observability.AttrWorkflowPayloadKey, key),
			observability.Int(observability.AttrWorkflowPayloadSize, len(payload)),
		)
	}

	return response, nil
}

// payloadPaths lists where Dify deployments put the generated text, in
// lookup order.
var payloadPaths = [][]string{
	{"result"},
	{"outputs", "result"},
	{"outputs", "text"},
	{"data", "outputs", "result"},
	{"data", "outputs", "text"},
	{"answer"},
}

// ExtractPayload returns the first non-empty string found at one of the known
// payload locations, together with its dotted key. It returns empty strings
// when no location carries text.
func ExtractPayload(body map[string]interface{}) (string, string) {
	for _, path := range payloadPaths {
		if text, ok := lookupString(body, path); ok && text != "" {
			return text, strings.Join(path, ".")
		}
	}
	return "", ""
}

func lookupString(body map[string]interface{}, path []string) (string, bool) {
	var current interface{} = body
	for _, key := range path {
		object, ok := current.(map[string]interface{})
		if !ok {
			return "", false
		}
		current, ok = object[key]
		if !ok {
			return "", false
		}
	}
	text, ok := current.(string)
	return text, ok
}

func runID(body map[string]interface{}) string {
	if id, ok := body["workflow_run_id"].(string); ok {
		return id
	}
	id, _ := lookupString(body, []string{"data", "id"})
	return id
}

// errorMessage prefers the "message" field of a Dify error body and falls
// back to the raw body text, then to the HTTP status text.
func errorMessage(httpErr *utils.HTTPError) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(httpErr.Body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if text := strings.TrimSpace(string(httpErr.Body)); text != "" {
		return text
	}
	return http.StatusText(httpErr.StatusCode)
}
