package quiz

import "strings"

const (
	// RowDelimiter separates question rows within a payload.
	RowDelimiter = "<_>"

	// FieldDelimiter separates positional fields within a row.
	FieldDelimiter = "|->"
)

// Skill is the category a question exercises. Values are taken verbatim from
// the generator output or the caller defaults; the constants below are the
// categories the prompt asks for.
type Skill string

const (
	SkillReading   Skill = "Reading"
	SkillWriting   Skill = "Writing"
	SkillListening Skill = "Listening"
	SkillSpeaking  Skill = "Speaking"
	SkillMath      Skill = "Math"
	SkillGrammar   Skill = "Grammar"
	SkillGeneral   Skill = "General"
)

// Kind is the question type.
type Kind string

const (
	KindMultipleChoice Kind = "Multiple Choice"
	KindShortAnswer    Kind = "Short Answer"
	KindTrueFalse      Kind = "True/False"
	KindFillInBlank    Kind = "Fill in the Blank"
	KindEssay          Kind = "Essay"
)

// IsMultipleChoice reports whether k names the multiple-choice kind. The
// comparison ignores case and surrounding whitespace.
func (k Kind) IsMultipleChoice() bool {
	return strings.EqualFold(strings.TrimSpace(string(k)), string(KindMultipleChoice))
}

// Question is one structured quiz question.
//
// Options is non-nil (possibly empty) when Type is multiple-choice and nil
// otherwise, so it encodes as a JSON array or null respectively.
type Question struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Skill       Skill    `json:"skill"`
	Type        Kind     `json:"type"`
}

// Defaults are the caller-supplied values used when a row does not carry its
// own skill and type.
type Defaults struct {
	Skill Skill
	Kind  Kind
}

// Fields is the raw field tuple a strategy extracts from a row, before option
// decoding and identifier assignment.
type Fields struct {
	Description string
	OptionsText string
	Answer      string
	Skill       Skill
	Kind        Kind
}
