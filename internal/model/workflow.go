package model

import "time"

// DocumentStatus is the lifecycle state of a workflow document.
type DocumentStatus string

const (
	DocumentDraft    DocumentStatus = "draft"
	DocumentReview   DocumentStatus = "review"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// IsTerminal reports whether no further step transitions are allowed.
func (s DocumentStatus) IsTerminal() bool {
	return s == DocumentApproved || s == DocumentRejected
}

// StepStatus is the state of a single approval step.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in-progress"
	StepCompleted  StepStatus = "completed"
	StepRejected   StepStatus = "rejected"
)

// IsTerminal reports whether the step has finished, successfully or not.
func (s StepStatus) IsTerminal() bool {
	return s == StepCompleted || s == StepRejected
}

// WorkflowDocument is content routed through an ordered chain of approval steps.
// CurrentStep is 1-based: the active step is Steps[CurrentStep-1].
type WorkflowDocument struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Status      DocumentStatus `json:"status"`
	CurrentStep int            `json:"currentStep"`
	Steps       []WorkflowStep `json:"steps"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// WorkflowStep is one stage of an approval chain.
type WorkflowStep struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Assignee    string     `json:"assignee"`
	Status      StepStatus `json:"status"`
	Comments    []string   `json:"comments,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
