package quiz

import (
	"regexp"
	"strings"
)

// Strategy extracts the fields of one row. It reports false when it does not
// recognize the row, letting the next strategy in the chain try.
type Strategy func(row string, defaults Defaults) (Fields, bool)

// DefaultStrategies returns the strategy chain used by [New]: positional
// fields first, labeled key-value extraction second.
func DefaultStrategies() []Strategy {
	return []Strategy{DelimitedStrategy, LabeledStrategy}
}

// DelimitedStrategy reads rows whose fields are separated by [FieldDelimiter].
//
// With five or more parts the fields are, in order, description, options,
// answer, skill and type; extra parts are ignored. With two to four parts only
// description and answer are read and skill and type come from defaults.
// Empty fields are accepted as-is.
func DelimitedStrategy(row string, defaults Defaults) (Fields, bool) {
	if !strings.Contains(row, FieldDelimiter) {
		return Fields{}, false
	}

	parts := strings.Split(row, FieldDelimiter)
	if len(parts) < 2 {
		return Fields{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) >= 5 {
		return Fields{
			Description: parts[0],
			OptionsText: parts[1],
			Answer:      parts[2],
			Skill:       Skill(parts[3]),
			Kind:        Kind(parts[4]),
		}, true
	}

	return Fields{
		Description: parts[0],
		Answer:      parts[1],
		Skill:       defaults.Skill,
		Kind:        defaults.Kind,
	}, true
}

var (
	descriptionPattern = regexp.MustCompile(`(?is)(?:description\s*:|^\s*[1-5]\.)\s*(.*?)\s*(?:options\s*:|answer\s*:|$)`)
	optionsPattern     = regexp.MustCompile(`(?is)options\s*:\s*(.*?)\s*(?:answer\s*:|$)`)
	answerPattern      = regexp.MustCompile(`(?is)answer\s*:\s*(.*?)\s*(?:skill\s*:|type\s*:|$)`)
)

// LabeledStrategy reads rows written as labeled blocks, for example
//
//	Description: What is 2+2? Options: ['3', '4'] Answer: 4
//
// A leading enumerator ("1." to "5.") stands in for the Description label.
// Labels are matched case-insensitively. Options are only captured when the
// default kind is multiple-choice. Both description and answer must be
// present; skill and type always come from defaults.
func LabeledStrategy(row string, defaults Defaults) (Fields, bool) {
	description := submatch(descriptionPattern, row)
	answer := submatch(answerPattern, row)
	if description == "" || answer == "" {
		return Fields{}, false
	}

	fields := Fields{
		Description: description,
		Answer:      answer,
		Skill:       defaults.Skill,
		Kind:        defaults.Kind,
	}
	if defaults.Kind.IsMultipleChoice() {
		fields.OptionsText = submatch(optionsPattern, row)
	}
	return fields, true
}

func submatch(pattern *regexp.Regexp, row string) string {
	match := pattern.FindStringSubmatch(row)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}
