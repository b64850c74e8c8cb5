package workflow

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"surveyflow/internal/model"
)

const (
	minTitleLen    = 3
	minContentLen  = 10
	minStepNameLen = 2
	minCommentLen  = 3
)

// Validate reports what is wrong with a document before it is created or
// edited. Lengths are counted in characters after trimming.
func Validate(doc model.WorkflowDocument) []string {
	violations := []string{}
	if n := textLen(doc.Title); n < minTitleLen {
		violations = append(violations, fmt.Sprintf("title must be at least %d characters", minTitleLen))
	}
	if n := textLen(doc.Content); n < minContentLen {
		violations = append(violations, fmt.Sprintf("content must be at least %d characters", minContentLen))
	}
	if doc.Status != "" && !validDocumentStatus(doc.Status) {
		violations = append(violations, fmt.Sprintf("unknown status %q", doc.Status))
	}
	if len(doc.Steps) == 0 {
		violations = append(violations, "at least one step is required")
	}
	for i, st := range doc.Steps {
		where := fmt.Sprintf("step %d", i+1)
		if textLen(st.Name) < minStepNameLen {
			violations = append(violations, fmt.Sprintf("%s: name must be at least %d characters", where, minStepNameLen))
		}
		if textLen(st.Assignee) < minStepNameLen {
			violations = append(violations, fmt.Sprintf("%s: assignee must be at least %d characters", where, minStepNameLen))
		}
		if st.Status != "" && !validStepStatus(st.Status) {
			violations = append(violations, fmt.Sprintf("%s: unknown status %q", where, st.Status))
		}
	}
	return violations
}

// ValidateComment reports a violation for comments that are too short.
// Blank comments are rejected separately by callers.
func ValidateComment(text string) []string {
	if textLen(text) < minCommentLen {
		return []string{fmt.Sprintf("comment must be at least %d characters", minCommentLen)}
	}
	return nil
}

func textLen(s string) int { return utf8.RuneCountInString(strings.TrimSpace(s)) }

func validDocumentStatus(s model.DocumentStatus) bool {
	switch s {
	case model.DocumentDraft, model.DocumentReview, model.DocumentApproved, model.DocumentRejected:
		return true
	}
	return false
}

func validStepStatus(s model.StepStatus) bool {
	switch s {
	case model.StepPending, model.StepInProgress, model.StepCompleted, model.StepRejected:
		return true
	}
	return false
}
