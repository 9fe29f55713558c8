package quiz

import (
	"reflect"
	"testing"
)

func TestDecodeOptions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single-quoted list literal", "['A', 'B', 'C']", []string{"A", "B", "C"}},
		{"double-quoted list literal", `["Paris", "Lyon"]`, []string{"Paris", "Lyon"}},
		{"unquoted list literal", "[A, B, C]", []string{"A", "B", "C"}},
		{"bare comma list", "Opt A, Opt B", []string{"Opt A", "Opt B"}},
		{"blank pieces dropped", " A ,, B , ", []string{"A", "B"}},
		{"numbers", "[1, 2, 3]", []string{"1", "2", "3"}},
		{"apostrophe in single-quoted item", "['Don't know', 'B']", []string{"Dont know", "B"}},
		{"apostrophe in double-quoted item", `["It's", "B"]`, []string{"Its", "B"}},
		{"escaped quote in valid JSON", `["say \"hi\"", "B"]`, []string{`say "hi"`, "B"}},
		{"empty text", "", []string{}},
		{"whitespace text", "   ", []string{}},
		{"empty list literal", "[]", []string{}},
		{"only punctuation", `[ '', "" ]`, []string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeOptions(tt.input)
			if got == nil {
				t.Fatal("DecodeOptions() returned nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeOptions(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeOptions_NestedListFallsBack(t *testing.T) {
	got := DecodeOptions(`[["A"], "B"]`)
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeOptions() = %#v, want %#v", got, want)
	}
}
