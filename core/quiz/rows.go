package quiz

import (
	"strings"

	"github.com/leofalp/quizforge/core/parse"
)

// Normalize strips code-fence markers and surrounding whitespace from a raw
// payload. Empty input yields empty output.
func Normalize(raw string) string {
	return parse.StripCodeFences(raw)
}

// SplitRows divides normalized text into candidate rows.
//
// Rows are separated by [RowDelimiter]; rows that are blank after trimming are
// discarded. Generators sometimes drop the row delimiter but keep one question
// per line, so when the primary split yields at most one row and the text
// still has both a [FieldDelimiter] and a newline, the text is re-split on
// newlines, keeping only the lines that carry a field delimiter.
func SplitRows(text string) []string {
	rows := nonBlank(strings.Split(text, RowDelimiter))
	if len(rows) > 1 {
		return rows
	}
	if !strings.Contains(text, FieldDelimiter) || !strings.Contains(text, "\n") {
		return rows
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, FieldDelimiter) {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

func nonBlank(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
