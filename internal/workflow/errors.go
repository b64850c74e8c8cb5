package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrStepNotFound      = errors.New("workflow step not found")
	ErrInvalidTransition = errors.New("invalid workflow transition")
	ErrDocumentTerminal  = fmt.Errorf("%w: document is closed", ErrInvalidTransition)
	ErrStepTerminal      = fmt.Errorf("%w: step already finished", ErrInvalidTransition)
	ErrStepOutOfTurn     = fmt.Errorf("%w: step is not the current step", ErrInvalidTransition)
)

const nilDocumentMsg = "nil document"

// TransitionError describes a refused transition on a specific step.
type TransitionError struct {
	Kind error
	Step int
	Msg  string
}

func (e *TransitionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("step %d: %s", e.Step, e.Kind.Error())
	}
	return fmt.Sprintf("step %d: %s: %s", e.Step, e.Kind.Error(), e.Msg)
}

func (e *TransitionError) Unwrap() error { return e.Kind }

func refusef(kind error, step int, format string, args ...any) error {
	return &TransitionError{Kind: kind, Step: step, Msg: fmt.Sprintf(format, args...)}
}
