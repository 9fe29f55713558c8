package quiz

import (
	"encoding/json"
	"strings"

	"github.com/leofalp/quizforge/core/parse"
)

// looseListReplacer removes list punctuation for the last-resort decode.
var looseListReplacer = strings.NewReplacer("[", "", "]", "", `"`, "", "'", "")

// DecodeOptions turns the options field of a multiple-choice row into an
// ordered list. It never fails: the result is always a non-nil slice.
//
// Decoding is attempted in order:
//  1. blank text yields an empty list;
//  2. a list literal, with single quotes read as double quotes, is decoded
//     as JSON and repaired when malformed (see [parse.ParseStringList]); a
//     repaired list is rejected when an item still holds a quote character,
//     since that quote came from an apostrophe in the option text;
//  3. otherwise brackets and quotes are stripped and the remainder is split
//     on commas, dropping blank pieces.
func DecodeOptions(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	literal := strings.ReplaceAll(text, "'", `"`)
	if strings.HasPrefix(literal, "[") {
		if items, err := parse.ParseStringList(literal); err == nil {
			if json.Valid([]byte(literal)) || !anyQuoted(items) {
				return items
			}
		}
	}

	return splitLooseList(text)
}

func splitLooseList(text string) []string {
	out := make([]string, 0)
	for _, piece := range strings.Split(looseListReplacer.Replace(text), ",") {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func anyQuoted(items []string) bool {
	for _, item := range items {
		if strings.ContainsAny(item, `"'`) {
			return true
		}
	}
	return false
}
