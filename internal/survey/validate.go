// Package survey holds domain rules for survey definitions that sit outside
// the data model: the pre-persistence validation pass and editor helpers.
package survey

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"surveyflow/internal/model"
)

// Validate returns human-readable violations for s. An empty result means s
// may be persisted. Validate never modifies s.
func Validate(s *model.Survey) []string {
	violations := []string{}
	if s == nil {
		return append(violations, "survey is required")
	}

	if blank(s.ID) {
		violations = append(violations, "survey id is required")
	}
	if blank(s.Title) {
		violations = append(violations, "title is required")
	}
	if len(s.Sections) == 0 {
		violations = append(violations, "at least one section is required")
	}

	sectionIDs := map[string]bool{}
	for i, sec := range s.Sections {
		where := fmt.Sprintf("section %d", i+1)
		if blank(sec.ID) {
			violations = append(violations, where+": id is required")
		} else if sectionIDs[sec.ID] {
			violations = append(violations, fmt.Sprintf("%s: duplicate id %q", where, sec.ID))
		}
		sectionIDs[sec.ID] = true

		if blank(sec.Title) {
			violations = append(violations, where+": title is required")
		}
		if len(sec.Questions) == 0 {
			violations = append(violations, where+": at least one question is required")
		}

		questionIDs := map[string]bool{}
		for j, q := range sec.Questions {
			violations = append(violations, validateQuestion(fmt.Sprintf("%s question %d", where, j+1), q, questionIDs)...)
			questionIDs[q.ID] = true
		}
	}
	return violations
}

func validateQuestion(where string, q model.Question, seen map[string]bool) []string {
	var out []string
	if blank(q.ID) {
		out = append(out, where+": id is required")
	} else if seen[q.ID] {
		out = append(out, fmt.Sprintf("%s: duplicate id %q", where, q.ID))
	}
	if blank(q.Label) {
		out = append(out, where+": label is required")
	}
	if !q.Type.Valid() {
		out = append(out, fmt.Sprintf("%s: unknown type %q", where, q.Type))
	}
	if q.Type.IsChoice() && !slices.ContainsFunc(q.Options, func(o string) bool { return !blank(o) }) {
		out = append(out, where+": options are required")
	}
	if v := q.Validation; v != nil {
		if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
			out = append(out, fmt.Sprintf("%s: min %d is greater than max %d", where, *v.Min, *v.Max))
		}
		if v.Pattern != "" {
			if _, err := regexp.Compile(v.Pattern); err != nil {
				out = append(out, fmt.Sprintf("%s: invalid pattern: %v", where, err))
			}
		}
	}
	return out
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
