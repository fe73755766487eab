// Package interp defines the evaluation contract between the
// interactions pane and the embedded interpreter, plus the goja-backed
// adapter used by the CLI.
package interp

import (
	"context"
	"errors"
)

// Value is the outcome of a single evaluation.
type Value interface {
	// HasResult reports whether the evaluation produced a value.
	// Statements (as opposed to expressions) produce none.
	HasResult() bool

	// Render converts the result to display text. Rendering itself can
	// fail; the caller reports that as an evaluation failure.
	Render() (string, error)
}

// Interpreter evaluates one input at a time and accumulates classpath
// entries. A session never mutates an interpreter across a reset; it
// builds a fresh one.
type Interpreter interface {
	Eval(ctx context.Context, code string) (Value, error)
	AddClasspath(dir string)
	Classpath() []string
}

// SyntaxError marks input the interpreter could not parse. The
// controller normalizes these to a fixed message.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

// IsSyntax reports whether err is a parse failure.
func IsSyntax(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// NoValue is a Value carrying no result.
type NoValue struct{}

func (NoValue) HasResult() bool         { return false }
func (NoValue) Render() (string, error) { return "", nil }
