package dfxp

import (
	"fmt"
)

// Code is a caption parse diagnostic code.
type Code int

const (
	// CodeNoUsableCaptions reports that no paragraph produced a cue.
	CodeNoUsableCaptions Code = 306101
	// CodeMissingDocument reports that no document was supplied.
	CodeMissingDocument Code = 306103
)

func (c Code) String() string {
	switch c {
	case CodeNoUsableCaptions:
		return "no usable captions"
	case CodeMissingDocument:
		return "missing document"
	default:
		return fmt.Sprintf("code %d", int(c))
	}
}

// ParseError is a fatal caption parse failure.
type ParseError struct {
	Code Code
}

var (
	ErrNoUsableCaptions = &ParseError{Code: CodeNoUsableCaptions}
	ErrMissingDocument  = &ParseError{Code: CodeMissingDocument}
)

func (e *ParseError) Error() string {
	return fmt.Sprintf("captions load failed: %s (%d)", e.Code, int(e.Code))
}

// Is matches any ParseError carrying the same code.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	return ok && other.Code == e.Code
}

// DiagnosticCode exposes the numeric code to composite errors.
func (e *ParseError) DiagnosticCode() int {
	return int(e.Code)
}

func parseError(code Code) error {
	return &ParseError{Code: code}
}
