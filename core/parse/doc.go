// Package parse provides utilities for recovering structured values from raw
// LLM text output. Language models wrap payloads in markdown code fences,
// emit Python-style list literals, or forget quotes and commas, so this
// package applies a layered recovery strategy (fence stripping, direct JSON
// decoding, automatic JSON repair) before giving up with a clear error.
//
// The main entry points are [ParseStringAs] for typed decoding,
// [ParseStringList] for list literals and [StripCodeFences] for cleaning a
// payload before line-oriented parsing.
package parse
