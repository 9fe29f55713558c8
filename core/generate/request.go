package generate

import (
	"strings"

	"github.com/leofalp/quizforge/core/quiz"
)

// DefaultCount is the number of questions requested when Count is not set.
const DefaultCount = 5

// maxCount caps how many questions one request may ask for.
const maxCount = 50

// Request describes the questions to generate.
type Request struct {
	Topic        string       `json:"topic"`
	Skills       []quiz.Skill `json:"skills"`
	QuestionType quiz.Kind    `json:"questionType"`
	Count        int          `json:"count"`
	Grade        string       `json:"grade"`
	User         string       `json:"user"`
}

// Validate checks the required fields.
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(string(r.QuestionType)) == "" {
		missing = append(missing, "questionType")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// count returns the requested question count clamped to [1, maxCount].
func (r Request) count() int {
	switch {
	case r.Count <= 0:
		return DefaultCount
	case r.Count > maxCount:
		return maxCount
	default:
		return r.Count
	}
}

// skills returns the requested skills without blanks.
func (r Request) skills() []quiz.Skill {
	out := make([]quiz.Skill, 0, len(r.Skills))
	for _, skill := range r.Skills {
		if trimmed := strings.TrimSpace(string(skill)); trimmed != "" {
			out = append(out, quiz.Skill(trimmed))
		}
	}
	return out
}
