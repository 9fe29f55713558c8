// Package quiz turns the loosely formatted text produced by a question
// generator into structured [Question] records.
//
// The pipeline runs strictly forward: the payload is normalized (code fences
// and surrounding whitespace removed), split into rows on the [RowDelimiter]
// token, and each row is handed to an ordered chain of [Strategy] functions.
// The first strategy that recognizes the row wins; rows that no strategy
// recognizes are dropped without failing the batch. Multiple-choice rows then
// have their options decoded by [DecodeOptions], which never fails, and every
// accepted row becomes a [Question] with a freshly generated identifier.
//
// Typical usage:
//
//	parser := quiz.New()
//	questions := parser.Parse(ctx, raw, quiz.Defaults{
//	    Skill: "Reading",
//	    Kind:  quiz.KindShortAnswer,
//	})
//
// A [Parser] holds no mutable state and is safe for concurrent use.
package quiz
