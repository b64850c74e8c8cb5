// Package workflow owns the legal transitions of a document's approval chain.
//
// A document moves through its steps in order: the step at CurrentStep-1 is
// the only one that can be approved. Approving the last step approves the
// document; rejecting any step rejects it. Approved and rejected documents
// are closed and refuse further step transitions.
package workflow

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"surveyflow/internal/model"
)

// Machine applies transitions to workflow documents in place.
type Machine struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDGenerator overrides the generator used for document and step ids.
func WithIDGenerator(gen func() string) Option {
	return func(m *Machine) { m.newID = gen }
}

// NewMachine returns a Machine stamping UTC wall-clock time and uuid ids.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Create builds a new document from caller-supplied fields.
//
// Step 0 is activated only if it is pending; a step 0 supplied in any other
// state is kept as given.
func (m *Machine) Create(partial model.WorkflowDocument) model.WorkflowDocument {
	now := m.now()
	doc := partial
	doc.ID = "doc-" + m.newID()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.CurrentStep = 1
	if doc.Status == "" {
		doc.Status = model.DocumentDraft
	}

	doc.Steps = make([]model.WorkflowStep, len(partial.Steps))
	copy(doc.Steps, partial.Steps)
	for i := range doc.Steps {
		doc.Steps[i].Comments = slices.Clone(doc.Steps[i].Comments)
		if at := doc.Steps[i].CompletedAt; at != nil {
			t := *at
			doc.Steps[i].CompletedAt = &t
		}
		if doc.Steps[i].ID == "" {
			doc.Steps[i].ID = "step-" + m.newID()
		}
		if doc.Steps[i].Status == "" {
			doc.Steps[i].Status = model.StepPending
		}
	}
	if len(doc.Steps) > 0 && doc.Steps[0].Status == model.StepPending {
		doc.Steps[0].Status = model.StepInProgress
	}
	return doc
}

// Approve completes the current step and activates the next one, or approves
// the document when the last step completes. CurrentStep is left unchanged
// on final approval.
func (m *Machine) Approve(doc *model.WorkflowDocument, stepIndex int) error {
	step, err := m.lookup(doc, stepIndex)
	if err != nil {
		return err
	}
	if doc.Status.IsTerminal() {
		return refusef(ErrDocumentTerminal, stepIndex, "status %s", doc.Status)
	}
	if step.Status.IsTerminal() {
		return refusef(ErrStepTerminal, stepIndex, "status %s", step.Status)
	}
	if stepIndex+1 != doc.CurrentStep {
		return refusef(ErrStepOutOfTurn, stepIndex, "current step is %d", doc.CurrentStep)
	}

	now := m.now()
	step.Status = model.StepCompleted
	step.CompletedAt = &now

	if next := stepIndex + 1; next < len(doc.Steps) {
		doc.CurrentStep = next + 1
		doc.Steps[next].Status = model.StepInProgress
	} else {
		doc.Status = model.DocumentApproved
	}
	doc.UpdatedAt = now
	return nil
}

// Reject marks the step and the whole document rejected. Any open step of an
// open document can be rejected; CurrentStep does not move.
func (m *Machine) Reject(doc *model.WorkflowDocument, stepIndex int) error {
	step, err := m.lookup(doc, stepIndex)
	if err != nil {
		return err
	}
	if doc.Status.IsTerminal() {
		return refusef(ErrDocumentTerminal, stepIndex, "status %s", doc.Status)
	}
	if step.Status.IsTerminal() {
		return refusef(ErrStepTerminal, stepIndex, "status %s", step.Status)
	}

	step.Status = model.StepRejected
	doc.Status = model.DocumentRejected
	doc.UpdatedAt = m.now()
	return nil
}

// Comment appends text to the step's comments. Blank text is the caller's
// concern; it is stored verbatim here.
func (m *Machine) Comment(doc *model.WorkflowDocument, stepIndex int, text string) error {
	step, err := m.lookup(doc, stepIndex)
	if err != nil {
		return err
	}
	step.Comments = append(step.Comments, text)
	doc.UpdatedAt = m.now()
	return nil
}

// Touch stamps UpdatedAt after a direct field edit.
func (m *Machine) Touch(doc *model.WorkflowDocument) {
	doc.UpdatedAt = m.now()
}

func (m *Machine) lookup(doc *model.WorkflowDocument, stepIndex int) (*model.WorkflowStep, error) {
	if doc == nil {
		return nil, &TransitionError{Kind: ErrStepNotFound, Step: stepIndex, Msg: nilDocumentMsg}
	}
	if stepIndex < 0 || stepIndex >= len(doc.Steps) {
		return nil, &TransitionError{Kind: ErrStepNotFound, Step: stepIndex}
	}
	return &doc.Steps[stepIndex], nil
}
