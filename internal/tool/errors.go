package tool

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes operation failures.
type ErrorKind string

const (
	// KindMissingParam indicates a required path parameter is empty or blank.
	KindMissingParam ErrorKind = "missing_param"

	// KindLoad indicates a scenario or script file could not be read.
	KindLoad ErrorKind = "load"

	// KindSave indicates the result could not be written.
	KindSave ErrorKind = "save"

	// KindInvalid indicates an edit could not be applied to the loaded data.
	KindInvalid ErrorKind = "invalid"
)

// OpError is the error every Runner operation returns.
type OpError struct {
	// Kind identifies the failure category.
	Kind ErrorKind

	// Op is the mode that failed, e.g. "del".
	Op string

	// Path is the file or parameter involved, if any.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ErrBlankPath is the cause of every KindMissingParam error.
var ErrBlankPath = errors.New("path is empty")

// KindOf returns the kind of the first OpError in err's chain.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) (ErrorKind, bool) {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind, true
	}
	return "", false
}

// IsMissingParam returns true if err is a blank path parameter error.
func IsMissingParam(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindMissingParam
}

func missingParam(op, name string) *OpError {
	return &OpError{Kind: KindMissingParam, Op: op, Path: name, Err: ErrBlankPath}
}
