package xmlcodec

import (
	"encoding/xml"
	"strconv"
	"strings"

	"surveyflow/internal/model"
)

// Wire shapes for the survey XML grammar. They are shared by Encode and Decode;
// decode-only fields stay empty on encode and are therefore never written.

type xmlSurvey struct {
	XMLName     xml.Name     `xml:"survey"`
	ID          string       `xml:"id,attr"`
	Title       string       `xml:"title"`
	Description string       `xml:"description"`
	Metadata    *xmlMetadata `xml:"metadata"`
	Sections    []xmlSection `xml:"section"`
}

type xmlMetadata struct {
	Created string `xml:"created,omitempty"`
	Version string `xml:"version,omitempty"`
	Author  string `xml:"author,omitempty"`
}

type xmlSection struct {
	ID          string        `xml:"id,attr"`
	Title       string        `xml:"title"`
	Description string        `xml:"description,omitempty"`
	Questions   []xmlQuestion `xml:"question"`
}

type xmlQuestion struct {
	ID          string         `xml:"id,attr"`
	Type        *string        `xml:"type,attr"`
	Required    string         `xml:"required,attr"`
	Label       string         `xml:"label"`
	Placeholder string         `xml:"placeholder,omitempty"`
	Options     *xmlOptions    `xml:"options"`
	Option      []string       `xml:"option"`
	Validation  *xmlValidation `xml:"validation"`
}

type xmlOptions struct {
	Option []string `xml:"option"`
}

type xmlValidation struct {
	Min string `xml:"min,omitempty"`
	Max string `xml:"max,omitempty"`
}

func fromModel(s *model.Survey) xmlSurvey {
	out := xmlSurvey{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
	}
	if s.Metadata != nil {
		out.Metadata = &xmlMetadata{
			Created: s.Metadata.Created,
			Version: s.Metadata.Version,
			Author:  s.Metadata.Author,
		}
	}
	for _, sec := range s.Sections {
		xs := xmlSection{
			ID:          sec.ID,
			Title:       sec.Title,
			Description: sec.Description,
		}
		for _, q := range sec.Questions {
			xs.Questions = append(xs.Questions, questionFromModel(q))
		}
		out.Sections = append(out.Sections, xs)
	}
	return out
}

func questionFromModel(q model.Question) xmlQuestion {
	typ := string(q.Type)
	xq := xmlQuestion{
		ID:          q.ID,
		Type:        &typ,
		Required:    strconv.FormatBool(q.Required),
		Label:       q.Label,
		Placeholder: q.Placeholder,
	}
	if len(q.Options) > 0 {
		// Blank options are written as-is; Decode drops them.
		xq.Options = &xmlOptions{Option: append([]string(nil), q.Options...)}
	}
	if v := q.Validation; v != nil && (v.Min != nil || v.Max != nil) {
		xv := &xmlValidation{}
		if v.Min != nil {
			xv.Min = strconv.Itoa(*v.Min)
		}
		if v.Max != nil {
			xv.Max = strconv.Itoa(*v.Max)
		}
		xq.Validation = xv
	}
	return xq
}

func (x *xmlSurvey) toModel() *model.Survey {
	s := &model.Survey{
		ID:          x.ID,
		Title:       x.Title,
		Description: x.Description,
	}
	if x.Metadata != nil {
		s.Metadata = &model.Metadata{
			Created: x.Metadata.Created,
			Version: x.Metadata.Version,
			Author:  x.Metadata.Author,
		}
	}
	for _, xs := range x.Sections {
		sec := model.Section{
			ID:          xs.ID,
			Title:       xs.Title,
			Description: xs.Description,
		}
		for _, xq := range xs.Questions {
			sec.Questions = append(sec.Questions, xq.toModel())
		}
		s.Sections = append(s.Sections, sec)
	}
	return s
}

func (x xmlQuestion) toModel() model.Question {
	q := model.Question{
		ID:          x.ID,
		Type:        model.QuestionText,
		Label:       x.Label,
		Required:    x.Required == "true",
		Placeholder: x.Placeholder,
		Options:     x.options(),
	}
	if x.Type != nil {
		q.Type = model.QuestionType(*x.Type)
	}
	if x.Validation != nil {
		lo, hi := parseBound(x.Validation.Min), parseBound(x.Validation.Max)
		if lo != nil || hi != nil {
			q.Validation = &model.Validation{Min: lo, Max: hi}
		}
	}
	return q
}

// options prefers the <options> wrapper and falls back to <option> elements
// placed directly under <question>. Both layouts exist in stored documents.
func (x xmlQuestion) options() []string {
	raw := x.Option
	if x.Options != nil {
		raw = x.Options.Option
	}
	var out []string
	for _, o := range raw {
		if strings.TrimSpace(o) == "" {
			continue
		}
		out = append(out, o)
	}
	return out
}

// parseBound accepts a whole base-10 integer only. Decimals such as "3.5"
// and suffixed values such as "10px" leave the bound unset rather than being
// truncated to a leading number.
func parseBound(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}
