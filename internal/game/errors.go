package game

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation error")
	// ErrInvalidState matches every *InvalidStateError via errors.Is.
	ErrInvalidState = errors.New("invalid state")
)

// Reason tells callers which constraint a rejected input violated.
type Reason string

const (
	ReasonWrongLength   Reason = "wrong_length"
	ReasonOutOfRange    Reason = "out_of_range"
	ReasonShapeMismatch Reason = "shape_mismatch"
	ReasonMissing       Reason = "missing"
	ReasonBadShape      Reason = "bad_shape"
	ReasonBadConfig     Reason = "bad_config"
)

// ValidationError reports malformed input. The rejected value is never stored.
type ValidationError struct {
	Reason Reason
	Msg    string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validationf(r Reason, format string, args ...any) error {
	return &ValidationError{Reason: r, Msg: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports an operation attempted in a state that forbids it.
type InvalidStateError struct {
	Op    Op
	State State
}

func (e *InvalidStateError) Error() string {
	switch {
	case e.Op == OpReveal:
		return fmt.Sprintf("%s: game not finished", e.Op)
	case e.State.Terminal():
		return fmt.Sprintf("%s: game already finished", e.Op)
	case e.Op == OpStart:
		return fmt.Sprintf("%s: game already started", e.Op)
	case e.State == StatePending:
		return fmt.Sprintf("%s: game not started", e.Op)
	default:
		return fmt.Sprintf("%s: not allowed in state %s", e.Op, e.State)
	}
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// ReasonOf extracts the validation reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return "", false
}
