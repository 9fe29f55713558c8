package generate

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/leofalp/quizforge/core/quiz"
	"github.com/leofalp/quizforge/providers/observability/slogobs"
	"github.com/leofalp/quizforge/providers/workflow"
)

// fakeProvider records the requests it receives and answers with a fixed
// response or error.
type fakeProvider struct {
	response *workflow.RunResponse
	err      error
	requests []workflow.RunRequest
}

func (f *fakeProvider) Run(_ context.Context, request workflow.RunRequest) (*workflow.RunResponse, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeProvider) WithAPIKey(string) workflow.Provider           { return f }
func (f *fakeProvider) WithBaseURL(string) workflow.Provider          { return f }
func (f *fakeProvider) WithHttpClient(*http.Client) workflow.Provider { return f }

func sequentialIDs() quiz.IDGenerator {
	n := 0
	return func() string {
		n++
		return "q" + string(rune('0'+n))
	}
}

func TestGenerate_NotConfigured(t *testing.T) {
	svc := New(nil, nil)

	// Configuration is checked before validation, so even an empty request
	// reports the configuration error.
	_, err := svc.Generate(context.Background(), Request{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if svc.Configured() {
		t.Error("expected Configured() to be false")
	}
}

func TestGenerate_Validation(t *testing.T) {
	provider := &fakeProvider{response: &workflow.RunResponse{}}
	svc := New(provider, nil)

	tests := []struct {
		name    string
		request Request
		fields  []string
	}{
		{"missing both", Request{}, []string{"topic", "questionType"}},
		{"missing topic", Request{QuestionType: quiz.KindMultipleChoice}, []string{"topic"}},
		{"blank type", Request{Topic: "fractions", QuestionType: "  "}, []string{"questionType"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tt.request)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if strings.Join(validationErr.Fields, ",") != strings.Join(tt.fields, ",") {
				t.Errorf("expected fields %v, got %v", tt.fields, validationErr.Fields)
			}
		})
	}

	if len(provider.requests) != 0 {
		t.Errorf("expected no upstream call on invalid requests, got %d", len(provider.requests))
	}
}

func TestGenerate_ParsesPayload(t *testing.T) {
	raw := "```\nWhat is 2+2? |-> ['3','4'] |-> 4 |-> Math |-> Multiple Choice <_> Capital of France? |-> Paris\n```"
	provider := &fakeProvider{response: &workflow.RunResponse{Payload: raw, RunID: "run-1"}}
	svc := New(provider, quiz.New(quiz.WithIDGenerator(sequentialIDs())), WithDefaultUser("svc-user"))

	result, err := svc.Generate(context.Background(), Request{
		Topic:        "general knowledge",
		Skills:       []quiz.Skill{"", quiz.SkillReading},
		QuestionType: "Short Answer",
		Count:        2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Raw != raw {
		t.Errorf("expected raw payload to be returned unchanged")
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(result.Questions))
	}

	first := result.Questions[0]
	if first.ID != "q1" || first.Type != quiz.KindMultipleChoice || first.Skill != quiz.SkillMath {
		t.Errorf("unexpected first question: %+v", first)
	}
	if strings.Join(first.Options, ",") != "3,4" {
		t.Errorf("expected options [3 4], got %v", first.Options)
	}

	second := result.Questions[1]
	if second.Skill != quiz.SkillReading {
		t.Errorf("expected default skill from first non-blank requested skill, got %q", second.Skill)
	}
	if second.Type != "Short Answer" {
		t.Errorf("expected default type from request, got %q", second.Type)
	}
	if second.Options != nil {
		t.Errorf("expected nil options for non multiple-choice, got %v", second.Options)
	}

	if len(provider.requests) != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", len(provider.requests))
	}
	if provider.requests[0].User != "svc-user" {
		t.Errorf("expected default user, got %q", provider.requests[0].User)
	}
	if !strings.Contains(provider.requests[0].Prompt, "general knowledge") {
		t.Errorf("expected prompt to mention the topic, got %q", provider.requests[0].Prompt)
	}
	inputs := provider.requests[0].Inputs
	wantInputs := map[string]string{
		InputTopic:        "general knowledge",
		InputQuestionType: "Short Answer",
		InputCount:        "2",
		InputSkills:       "Reading",
	}
	for key, want := range wantInputs {
		if inputs[key] != want {
			t.Errorf("input %s = %q, want %q", key, inputs[key], want)
		}
	}
	if _, ok := inputs[InputGrade]; ok {
		t.Errorf("expected no grade input without a grade, got %q", inputs[InputGrade])
	}
}

func TestGenerate_GradeInput(t *testing.T) {
	provider := &fakeProvider{response: &workflow.RunResponse{}}
	svc := New(provider, nil)

	if _, err := svc.Generate(context.Background(), Request{Topic: "t", QuestionType: "Essay", Grade: " 5th grade "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inputs := provider.requests[0].Inputs
	if inputs[InputGrade] != "5th grade" || inputs[InputCount] != "5" {
		t.Errorf("unexpected inputs: %v", inputs)
	}
}

func TestGenerate_DefaultSkillFallback(t *testing.T) {
	provider := &fakeProvider{response: &workflow.RunResponse{Payload: "Q? |-> A"}}
	svc := New(provider, nil, WithDefaultSkill(quiz.SkillGrammar))

	result, err := svc.Generate(context.Background(), Request{Topic: "verbs", QuestionType: "Essay", User: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Questions) != 1 || result.Questions[0].Skill != quiz.SkillGrammar {
		t.Fatalf("expected one Grammar question, got %+v", result.Questions)
	}
	if provider.requests[0].User != "u1" {
		t.Errorf("expected request user to win, got %q", provider.requests[0].User)
	}
}

func TestGenerate_EmptyPayload(t *testing.T) {
	provider := &fakeProvider{response: &workflow.RunResponse{}}
	svc := New(provider, nil)

	result, err := svc.Generate(context.Background(), Request{Topic: "t", QuestionType: quiz.KindMultipleChoice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Questions == nil || len(result.Questions) != 0 {
		t.Errorf("expected empty non-nil questions, got %#v", result.Questions)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	provider := &fakeProvider{err: &workflow.UpstreamError{StatusCode: 429, Message: "rate limited"}}
	svc := New(provider, nil)

	_, err := svc.Generate(context.Background(), Request{Topic: "t", QuestionType: "Essay"})

	var upstreamErr *workflow.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected *workflow.UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != 429 || upstreamErr.Message != "rate limited" {
		t.Errorf("unexpected upstream error: %+v", upstreamErr)
	}
	if len(provider.requests) != 1 {
		t.Errorf("expected a single attempt, got %d", len(provider.requests))
	}
}

func TestGenerate_MiddlewareOrder(t *testing.T) {
	provider := &fakeProvider{response: &workflow.RunResponse{}}

	var order []string
	tag := func(name string) Middleware {
		return func(next RunFunc) RunFunc {
			return func(ctx context.Context, request workflow.RunRequest) (*workflow.RunResponse, error) {
				order = append(order, name+":before")
				resp, err := next(ctx, request)
				order = append(order, name+":after")
				return resp, err
			}
		}
	}

	svc := New(provider, nil, WithMiddleware(tag("outer"), tag("inner")))
	if _, err := svc.Generate(context.Background(), Request{Topic: "t", QuestionType: "Essay"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "outer:before,inner:before,inner:after,outer:after"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected order %s, got %s", want, got)
	}
}

func TestGenerate_ObserverMetrics(t *testing.T) {
	observer := slogobs.New(slogobs.WithOutput(&strings.Builder{}))
	provider := &fakeProvider{response: &workflow.RunResponse{Payload: "A? |-> a <_> B? |-> b"}}
	svc := New(provider, quiz.New(quiz.WithObserver(observer)), WithObserver(observer))

	if _, err := svc.Generate(context.Background(), Request{Topic: "t", QuestionType: "Essay"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := observer.CounterValue("quizforge.workflow.runs"); got != 1 {
		t.Errorf("expected 1 workflow run, got %d", got)
	}
	if got := observer.CounterValue("quizforge.questions.built"); got != 2 {
		t.Errorf("expected 2 questions built, got %d", got)
	}
}
