package form

import (
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"surveyflow/internal/model"
)

const dateLayout = "2006-01-02"

// Bind checks answers against the questions of s and builds a response from
// the non-empty ones, in survey order. Keys of answers are question ids.
// When violations is non-empty the returned response must not be stored.
func Bind(s *model.Survey, answers map[string]any, now time.Time) (model.SurveyResponse, []string) {
	resp := model.SurveyResponse{
		SurveyID:    s.ID,
		Responses:   []model.ResponseItem{},
		SubmittedAt: now,
	}
	violations := []string{}
	known := map[string]bool{}

	for _, f := range Fields(s) {
		known[f.QuestionID] = true
		raw, ok := answers[f.QuestionID]
		if !ok || empty(raw) {
			if f.Required {
				violations = append(violations, f.QuestionID+": answer is required")
			}
			continue
		}
		value, err := coerce(f, raw)
		if err != nil {
			violations = append(violations, fmt.Sprintf("%s: %v", f.QuestionID, err))
			continue
		}
		resp.Responses = append(resp.Responses, model.ResponseItem{
			QuestionID:    f.QuestionID,
			QuestionLabel: f.Label,
			Value:         value,
		})
	}

	for _, id := range slices.Sorted(maps.Keys(answers)) {
		if !known[id] {
			violations = append(violations, fmt.Sprintf("%s: unknown question", id))
		}
	}
	return resp, violations
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}

func coerce(f Field, raw any) (any, error) {
	switch f.Type {
	case model.QuestionCheckbox:
		return choices(f, raw)
	case model.QuestionNumber:
		return number(f, raw)
	}

	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string, got %T", raw)
	}
	if f.Type.IsChoice() && !slices.Contains(f.Options, s) {
		return nil, fmt.Errorf("%q is not one of the options", s)
	}
	if f.Type == model.QuestionDate {
		if _, err := time.Parse(dateLayout, s); err != nil {
			return nil, fmt.Errorf("%q is not a YYYY-MM-DD date", s)
		}
	}
	if err := matches(f.Pattern, s); err != nil {
		return nil, err
	}
	return s, nil
}

func choices(f Field, raw any) ([]string, error) {
	var picked []string
	switch t := raw.(type) {
	case []string:
		picked = t
	case []any:
		for _, v := range t {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings, got %T", v)
			}
			picked = append(picked, s)
		}
	default:
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}
	for _, s := range picked {
		if !slices.Contains(f.Options, s) {
			return nil, fmt.Errorf("%q is not one of the options", s)
		}
	}
	return picked, nil
}

func number(f Field, raw any) (float64, error) {
	var n float64
	switch t := raw.(type) {
	case float64:
		n = t
	case int:
		n = float64(t)
	case json.Number:
		v, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t.String())
		}
		n = v
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t)
		}
		n = v
	default:
		return 0, fmt.Errorf("expected a number, got %T", raw)
	}
	if f.Min != nil && n < float64(*f.Min) {
		return 0, fmt.Errorf("%v is less than %d", n, *f.Min)
	}
	if f.Max != nil && n > float64(*f.Max) {
		return 0, fmt.Errorf("%v is greater than %d", n, *f.Max)
	}
	if f.Pattern != "" {
		if err := matches(f.Pattern, strconv.FormatFloat(n, 'f', -1, 64)); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// matches applies pattern to the whole of s.
func matches(pattern, s string) error {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	if !re.MatchString(s) {
		return fmt.Errorf("%q does not match %s", s, pattern)
	}
	return nil
}
