// Package playererr carries caption load failures together with the phase
// that produced them.
package playererr

import (
	"errors"
	"fmt"
)

// Phase names the loader step that failed.
type Phase string

const (
	PhaseRead     Phase = "read"
	PhaseDecode   Phase = "decode"
	PhaseCaptions Phase = "captions"
)

// MsgCaptionsLoadFailed is the message key shown to viewers when captions cannot be loaded.
const MsgCaptionsLoadFailed = "cantLoadCaptions"

// coder is implemented by causes that carry a numeric diagnostic code.
type coder interface {
	DiagnosticCode() int
}

// Error wraps a load failure with its phase.
type Error struct {
	Phase Phase
	Cause error
}

// Wrap tags err with phase. A nil err stays nil and an err that already
// carries a phase keeps it.
func Wrap(phase Phase, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Phase: phase, Cause: err}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", MsgCaptionsLoadFailed, e.Phase)
	}
	return fmt.Sprintf("%s: %s: %v", MsgCaptionsLoadFailed, e.Phase, e.Cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Code reports the cause's diagnostic code, or 0 when it has none.
func (e *Error) Code() int {
	if e == nil {
		return 0
	}
	var c coder
	if errors.As(e.Cause, &c) {
		return c.DiagnosticCode()
	}
	return 0
}

// PhaseOf returns the phase recorded on err's chain.
func PhaseOf(err error) (Phase, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Phase, true
	}
	return "", false
}

// CodeOf returns the diagnostic code found on err's chain, or 0.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	var c coder
	if errors.As(err, &c) {
		return c.DiagnosticCode()
	}
	return 0
}
