package generate

import (
	"fmt"
	"strings"

	"github.com/leofalp/quizforge/core/quiz"
)

// BuildPrompt renders the natural-language instruction for the workflow. The
// output format it asks for is the one the quiz parser reads first: rows
// separated by quiz.RowDelimiter, fields separated by quiz.FieldDelimiter.
func BuildPrompt(request Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate %d %s questions about %s", request.count(), strings.TrimSpace(string(request.QuestionType)), strings.TrimSpace(request.Topic))
	if grade := strings.TrimSpace(request.Grade); grade != "" {
		fmt.Fprintf(&sb, " for %s students", grade)
	}
	sb.WriteString(".\n")

	if skills := request.skills(); len(skills) > 0 {
		names := make([]string, len(skills))
		for i, skill := range skills {
			names[i] = string(skill)
		}
		fmt.Fprintf(&sb, "Cover these skills: %s.\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&sb, "Write each question on one row and separate rows with %s.\n", quiz.RowDelimiter)
	fmt.Fprintf(&sb, "Separate the fields of a row with %s in this order: description, options, answer, skill, type.\n", quiz.FieldDelimiter)
	if request.QuestionType.IsMultipleChoice() {
		sb.WriteString("Write options as a list literal such as ['A', 'B', 'C', 'D'].\n")
	} else {
		sb.WriteString("Leave the options field empty.\n")
	}
	sb.WriteString("Do not add any other text.")

	return sb.String()
}
