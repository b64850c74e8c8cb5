// Package form adapts survey definitions to input fields and binds submitted
// answers back into a survey response.
package form

import "surveyflow/internal/model"

// Field describes one rendered input. It mirrors a question with its
// validation flattened so clients do not need to walk the survey tree.
type Field struct {
	SectionID  string             `json:"sectionId"`
	QuestionID string             `json:"questionId"`
	Type       model.QuestionType `json:"type"`
	Label      string             `json:"label"`
	Required   bool               `json:"required"`
	Options    []string           `json:"options,omitempty"`
	Min        *int               `json:"min,omitempty"`
	Max        *int               `json:"max,omitempty"`
	Pattern    string             `json:"pattern,omitempty"`
	Multiple   bool               `json:"multiple"`
}

// Fields lists every question of s in survey order.
func Fields(s *model.Survey) []Field {
	fields := []Field{}
	if s == nil {
		return fields
	}
	for _, sec := range s.Sections {
		for _, q := range sec.Questions {
			f := Field{
				SectionID:  sec.ID,
				QuestionID: q.ID,
				Type:       q.Type,
				Label:      q.Label,
				Required:   q.Required,
				Options:    q.Options,
				Multiple:   q.Type == model.QuestionCheckbox,
			}
			if v := q.Validation; v != nil {
				f.Min, f.Max, f.Pattern = v.Min, v.Max, v.Pattern
			}
			fields = append(fields, f)
		}
	}
	return fields
}
