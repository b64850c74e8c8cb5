package workflow

import "surveyflow/internal/model"

// StepState is how a step reads on a progress indicator.
type StepState string

const (
	StateCompleted StepState = "completed"
	StateCurrent   StepState = "current"
	StateRejected  StepState = "rejected"
	StatePending   StepState = "pending"
)

// StateOf reports the presentation state of step i.
func StateOf(doc *model.WorkflowDocument, i int) StepState {
	if doc == nil || i < 0 || i >= len(doc.Steps) {
		return StatePending
	}
	switch doc.Steps[i].Status {
	case model.StepCompleted:
		return StateCompleted
	case model.StepRejected:
		return StateRejected
	}
	if i+1 == doc.CurrentStep && !doc.Status.IsTerminal() {
		return StateCurrent
	}
	return StatePending
}

// CanAct reports whether step i would accept an approve transition now.
func CanAct(doc *model.WorkflowDocument, i int) bool {
	if doc == nil || i < 0 || i >= len(doc.Steps) {
		return false
	}
	return !doc.Status.IsTerminal() &&
		!doc.Steps[i].Status.IsTerminal() &&
		i+1 == doc.CurrentStep
}
