package htypes

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	// ErrorKindGrammar is an unexpected token, a missing delimiter or a premature end of input.
	ErrorKindGrammar ErrorKind = iota
	// ErrorKindValidation is a parameter out of bounds or a wrong parameter count.
	ErrorKindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindGrammar:
		return "grammar"
	case ErrorKindValidation:
		return "validation"
	}
	panic("impossible, error kind switch bug")
}

// ParseError describes why a type string was rejected.
// The message is stable and may be matched on by callers.
type ParseError struct {
	Kind  ErrorKind
	Input string
	// Position is the byte offset of the offending token, or -1 when the input ended.
	Position int
	Message  string
}

func (e *ParseError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:     ErrorKindValidation,
		Position: -1,
		Message:  fmt.Sprintf(format, args...),
	}
}

// IsGrammarError reports whether err, or its cause, is a grammar violation.
func IsGrammarError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr) && parseErr.Kind == ErrorKindGrammar
}

// IsValidationError reports whether err, or its cause, is a validation violation.
func IsValidationError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr) && parseErr.Kind == ErrorKindValidation
}
