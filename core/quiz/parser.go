package quiz

import (
	"context"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/google/uuid"

	"github.com/leofalp/quizforge/internal/utils"
	"github.com/leofalp/quizforge/providers/observability"
)

// IDGenerator returns a fresh identifier for each built question.
type IDGenerator func() string

// Parser extracts questions from generator payloads.
type Parser struct {
	strategies []Strategy
	newID      IDGenerator
	markdown   bool
	observer   observability.Provider
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(p *Parser) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// WithStrategies replaces the strategy chain. Strategies are tried in the
// given order.
func WithStrategies(strategies ...Strategy) Option {
	return func(p *Parser) {
		p.strategies = strategies
	}
}

// WithMarkdownDescriptions converts inline HTML in descriptions and answers
// to markdown. Text without HTML tags is left untouched.
func WithMarkdownDescriptions() Option {
	return func(p *Parser) {
		p.markdown = true
	}
}

// WithObserver reports parse spans, row counters and dropped rows.
func WithObserver(observer observability.Provider) Option {
	return func(p *Parser) {
		p.observer = observer
	}
}

// New returns a Parser using [DefaultStrategies] and random UUIDs.
func New(opts ...Option) *Parser {
	p := &Parser{
		strategies: DefaultStrategies(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts questions from raw, in row order. Rows no strategy
// recognizes are dropped. Parse never fails; an unusable payload yields an
// empty, non-nil slice.
func (p *Parser) Parse(ctx context.Context, raw string, defaults Defaults) []Question {
	if p.observer != nil {
		var span observability.Span
		ctx, span = p.observer.StartSpan(ctx, observability.SpanParse)
		defer span.End()
	}

	rows := SplitRows(Normalize(raw))
	questions := make([]Question, 0, len(rows))

	for _, row := range rows {
		fields, ok := p.extract(row, defaults)
		if !ok {
			p.rowDropped(ctx, row)
			continue
		}
		questions = append(questions, p.build(fields))
	}

	if p.observer != nil {
		p.observer.Counter(observability.MetricRowsParsed).Add(ctx, int64(len(rows)))
		p.observer.Counter(observability.MetricQuestionsBuilt).Add(ctx, int64(len(questions)))
		if span := observability.SpanFromContext(ctx); span != nil {
			span.SetAttributes(
				observability.Int(observability.AttrQuizRows, len(rows)),
				observability.Int(observability.AttrQuizQuestions, len(questions)),
			)
		}
	}

	return questions
}

func (p *Parser) extract(row string, defaults Defaults) (Fields, bool) {
	for _, strategy := range p.strategies {
		if fields, ok := strategy(row, defaults); ok {
			return fields, true
		}
	}
	return Fields{}, false
}

func (p *Parser) rowDropped(ctx context.Context, row string) {
	if p.observer == nil {
		return
	}
	preview := observability.String(observability.AttrQuizRowPreview, utils.TruncateString(row, 120))
	p.observer.Counter(observability.MetricRowsDropped).Add(ctx, 1)
	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventRowDropped, preview)
	}
	p.observer.Debug(ctx, "quiz row not recognized", preview)
}

// build turns extracted fields into a Question. Options are decoded only for
// multiple-choice rows and stay nil otherwise.
func (p *Parser) build(fields Fields) Question {
	question := Question{
		ID:          p.newID(),
		Description: fields.Description,
		Answer:      fields.Answer,
		Skill:       fields.Skill,
		Type:        fields.Kind,
	}
	if fields.Kind.IsMultipleChoice() {
		question.Options = DecodeOptions(fields.OptionsText)
	}
	if p.markdown {
		question.Description = toMarkdown(question.Description)
		question.Answer = toMarkdown(question.Answer)
	}
	return question
}

var htmlTagPattern = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9]*(?:\s[^<>]*)?/?>`)

// toMarkdown converts text containing HTML tags to markdown. Conversion
// failures keep the original text.
func toMarkdown(text string) string {
	if !htmlTagPattern.MatchString(text) {
		return text
	}
	markdown, err := htmltomarkdown.ConvertString(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(markdown)
}
