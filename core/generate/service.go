package generate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leofalp/quizforge/core/quiz"
	"github.com/leofalp/quizforge/providers/observability"
	"github.com/leofalp/quizforge/providers/workflow"
)

// Workflow variables sent with every run.
const (
	InputTopic        = "topic"
	InputQuestionType = "question_type"
	InputCount        = "count"
	InputSkills       = "skills"
	InputGrade        = "grade"
)

// Result is the outcome of one generation: the parsed questions and the raw
// payload they were parsed from.
type Result struct {
	Questions []quiz.Question `json:"questions"`
	Raw       string          `json:"raw"`
}

// Service generates quiz questions through an upstream workflow.
type Service struct {
	provider     workflow.Provider
	parser       *quiz.Parser
	middlewares  []Middleware
	observer     observability.Provider
	defaultSkill quiz.Skill
	defaultUser  string
	run          RunFunc
}

// Option configures a Service.
type Option func(*Service)

// WithMiddleware appends middlewares to the upstream call chain. The first
// middleware is the outermost wrapper.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(s *Service) {
		s.middlewares = append(s.middlewares, middlewares...)
	}
}

// WithObserver enables spans and workflow metrics.
func WithObserver(observer observability.Provider) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

// WithDefaultSkill sets the skill used when a request names none.
func WithDefaultSkill(skill quiz.Skill) Option {
	return func(s *Service) {
		s.defaultSkill = skill
	}
}

// WithDefaultUser sets the upstream user when a request names none.
func WithDefaultUser(user string) Option {
	return func(s *Service) {
		s.defaultUser = user
	}
}

// New builds a Service. A nil provider is allowed: every Generate call then
// fails with ErrNotConfigured. A nil parser is replaced by quiz.New().
func New(provider workflow.Provider, parser *quiz.Parser, opts ...Option) *Service {
	if parser == nil {
		parser = quiz.New()
	}
	s := &Service{
		provider:     provider,
		parser:       parser,
		defaultSkill: quiz.SkillGeneral,
	}
	for _, opt := range opts {
		opt(s)
	}
	if provider != nil {
		s.run = buildChain(provider, s.middlewares)
	}
	return s
}

// Configured reports whether an upstream provider is available.
func (s *Service) Configured() bool {
	return s.provider != nil
}

// Generate runs the workflow once and parses its payload.
func (s *Service) Generate(ctx context.Context, request Request) (*Result, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	var span observability.Span
	if s.observer != nil {
		ctx, span = s.observer.StartSpan(ctx, observability.SpanGenerate,
			observability.String(observability.AttrQuizTopic, request.Topic),
			observability.String(observability.AttrQuizQuestionType, string(request.QuestionType)),
			observability.Int(observability.AttrQuizRequestedSize, request.count()),
		)
		defer span.End()
	}

	user := request.User
	if user == "" {
		user = s.defaultUser
	}

	runCtx := ctx
	var runSpan observability.Span
	if s.observer != nil {
		runCtx, runSpan = s.observer.StartSpan(ctx, observability.SpanWorkflowRun)
	}

	start := time.Now()
	response, err := s.run(runCtx, workflow.RunRequest{
		Prompt: BuildPrompt(request),
		Inputs: workflowInputs(request),
		User:   user,
	})
	s.recordRun(ctx, time.Since(start), err)
	if runSpan != nil {
		if err != nil {
			runSpan.RecordError(err)
			runSpan.SetStatus(observability.StatusError, err.Error())
		}
		runSpan.End()
	}
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "workflow run failed")
		}
		return nil, fmt.Errorf("workflow run: %w", err)
	}

	defaults := quiz.Defaults{
		Skill: s.defaultSkill,
		Kind:  quiz.Kind(strings.TrimSpace(string(request.QuestionType))),
	}
	if skills := request.skills(); len(skills) > 0 {
		defaults.Skill = skills[0]
	}

	questions := s.parser.Parse(ctx, response.Payload, defaults)

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrQuizDefaultSkill, string(defaults.Skill)),
			observability.String(observability.AttrWorkflowRunID, response.RunID),
			observability.Int(observability.AttrQuizQuestions, len(questions)),
		)
		span.SetStatus(observability.StatusOK, "")
	}

	return &Result{Questions: questions, Raw: response.Payload}, nil
}

// workflowInputs exposes the request fields as workflow variables so a Dify
// workflow can use them without parsing the prompt.
func workflowInputs(request Request) map[string]string {
	skills := request.skills()
	names := make([]string, len(skills))
	for i, skill := range skills {
		names[i] = string(skill)
	}

	inputs := map[string]string{
		InputTopic:        strings.TrimSpace(request.Topic),
		InputQuestionType: strings.TrimSpace(string(request.QuestionType)),
		InputCount:        strconv.Itoa(request.count()),
		InputSkills:       strings.Join(names, ", "),
	}
	if grade := strings.TrimSpace(request.Grade); grade != "" {
		inputs[InputGrade] = grade
	}
	return inputs
}

func (s *Service) recordRun(ctx context.Context, elapsed time.Duration, err error) {
	if s.observer == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.observer.Counter(observability.MetricWorkflowRuns).Add(ctx, 1,
		observability.String(observability.AttrStatus, status),
	)
	s.observer.Histogram(observability.MetricWorkflowDuration).Record(ctx, elapsed.Seconds())
}
