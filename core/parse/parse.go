package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var (
	// fenceLinePattern matches an opening or closing fence that sits on its own
	// line, optionally followed by a language tag such as "json" or "text".
	fenceLinePattern = regexp.MustCompile("(?m)```[A-Za-z0-9_+-]*[ \t]*$")

	// inlineFenceTagPattern matches an opening fence followed on the same line
	// by a well-known payload tag, as in "```json Q1|->A".
	inlineFenceTagPattern = regexp.MustCompile("(?i)```(?:json|jsonc|text|txt|plaintext|csv|markdown|md)\\b[ \t]*")
)

// StripCodeFences removes markdown code-fence markers anywhere in content and
// trims the surrounding whitespace. It never fails; empty input yields an
// empty string.
func StripCodeFences(content string) string {
	if content == "" {
		return ""
	}
	content = fenceLinePattern.ReplaceAllString(content, "")
	content = inlineFenceTagPattern.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// ParseStringAs attempts to parse a string into the specified type T.
// For primitive types (string, bool, int, uint, float), it performs direct conversion.
// For complex types (structs, maps, slices), it attempts JSON unmarshaling.
// If JSON unmarshaling fails, it will attempt to repair the JSON string using jsonrepair
// and retry the unmarshaling operation.
//
// Example usage:
//
//	// Parse a valid JSON list
//	items, err := ParseStringAs[[]string](`["a","b"]`)
//
//	// Parse an invalid JSON list (will be auto-repaired)
//	items, err := ParseStringAs[[]string](`[a, b]`)
//
//	// Parse primitive types
//	num, err := ParseStringAs[int]("42")
func ParseStringAs[T any](content string) (T, error) {
	var result T
	value := reflect.ValueOf(&result).Elem()

	switch value.Kind() {
	case reflect.String:
		value.SetString(content)
		return result, nil

	case reflect.Bool:
		val, err := strconv.ParseBool(strings.TrimSpace(content))
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		value.SetBool(val)
		return result, nil

	case reflect.Float32, reflect.Float64:
		val, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		value.SetFloat(val)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val, err := strconv.ParseInt(strings.TrimSpace(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		value.SetInt(val)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val, err := strconv.ParseUint(strings.TrimSpace(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		value.SetUint(val)
		return result, nil

	default:
		err := json.Unmarshal([]byte(content), &result)
		if err == nil {
			return result, nil
		}

		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
		}

		// Start from a clean value: a failed first attempt may have partially filled result.
		var retry T
		if err = json.Unmarshal([]byte(repaired), &retry); err != nil {
			return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", retry, err, repaired)
		}
		return retry, nil
	}
}

// ParseStringList decodes a list literal such as `["a", "b"]` into its string
// elements. Numbers and booleans are rendered with their JSON text. Content
// that is not a flat JSON array (objects, nested lists, null elements) is
// rejected. Malformed literals are repaired when possible, see [ParseStringAs].
func ParseStringList(content string) ([]string, error) {
	items, err := ParseStringAs[[]json.RawMessage](content)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return nil, fmt.Errorf("content is not a list")
	}

	out := make([]string, 0, len(items))
	for i, raw := range items {
		text, err := scalarText(raw)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		out = append(out, text)
	}
	return out, nil
}

// scalarText renders a single JSON scalar as plain text.
func scalarText(raw json.RawMessage) (string, error) {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", err
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case float64, bool:
		return strings.TrimSpace(string(raw)), nil
	case nil:
		return "", fmt.Errorf("null is not a list item")
	default:
		return "", fmt.Errorf("unsupported list item %T", v)
	}
}
