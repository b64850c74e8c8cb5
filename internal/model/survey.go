package model

// QuestionType enumerates the input kinds a question can render as.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionNumber   QuestionType = "number"
	QuestionSelect   QuestionType = "select"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
	QuestionTextarea QuestionType = "textarea"
	QuestionDate     QuestionType = "date"
)

// IsChoice reports whether answers must come from the question's options.
func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionSelect, QuestionRadio, QuestionCheckbox:
		return true
	default:
		return false
	}
}

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionNumber, QuestionSelect, QuestionRadio, QuestionCheckbox, QuestionTextarea, QuestionDate:
		return true
	default:
		return false
	}
}

// Survey is a named, versioned definition of sections and questions.
// A survey exclusively owns its sections, which exclusively own their questions.
type Survey struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Metadata    *Metadata `json:"metadata,omitempty"`
	Sections    []Section `json:"sections"`
}

// Metadata carries authoring information. Empty fields are treated as absent.
type Metadata struct {
	Created string `json:"created,omitempty"`
	Version string `json:"version,omitempty"`
	Author  string `json:"author,omitempty"`
}

// Section is a titled grouping of questions.
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Question is a single input definition.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Label       string       `json:"label"`
	Required    bool         `json:"required"`
	Options     []string     `json:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Validation  *Validation  `json:"validation,omitempty"`
}

// Validation holds optional bounds for an answer. A nil bound is unset, not zero.
type Validation struct {
	Min     *int   `json:"min,omitempty"`
	Max     *int   `json:"max,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

// IntPtr is a small helper for building Validation literals.
func IntPtr(v int) *int { return &v }
