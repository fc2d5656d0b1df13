package errors

import (
	"fmt"
	"os"
	"strings"
)

// MinicError is the interface implemented by all Minic errors.
type MinicError interface {
	error // Embed the standard error interface
	Pos() Position
	Kind() string // "Syntax" or "Runtime"
	// Code returns the machine-readable condition name, e.g. MissingSemicolon.
	Code() Code
	// Message returns the specific error message without position info.
	Message() string
	Unwrap() error // For error wrapping support (errors.Is/As)
}

// Code identifies a distinct error condition. Every committed parser failure
// and every evaluator failure maps to exactly one Code.
type Code string

const (
	// Syntax conditions
	MissingSemicolon    Code = "MissingSemicolon"
	MissingRightParen   Code = "MissingRightParen"
	MissingOperand      Code = "MissingOperand"
	MissingInitializer  Code = "MissingInitializer"
	MissingVariableName Code = "MissingVariableName"
	UnknownStatement    Code = "UnknownStatement"

	// Runtime conditions
	UnknownVariable Code = "UnknownVariable"
	UnsetVariable   Code = "UnsetVariable"
	DivisionByZero  Code = "DivisionByZero"
)

// --- Concrete Error Types ---

// SyntaxError represents an error raised once the parser has irrevocably
// committed to a grammar rule that then fails. Speculative rule probes never
// produce a SyntaxError; they report non-match through a separate channel.
type SyntaxError struct {
	Position
	Condition Code
	Msg       string
	Cause     error // Underlying cause, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Code() Code      { return e.Condition }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// Is reports whether target carries the same condition Code. This lets
// callers match conditions with errors.Is without depending on wording.
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	return ok && t.Condition == e.Condition
}

// RuntimeError represents an error during AST evaluation. The position points
// at the node whose evaluation failed.
type RuntimeError struct {
	Position
	Condition Code
	Msg       string
	Cause     error // Underlying cause, if any
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *RuntimeError) Pos() Position   { return e.Position }
func (e *RuntimeError) Kind() string    { return "Runtime" }
func (e *RuntimeError) Code() Code      { return e.Condition }
func (e *RuntimeError) Message() string { return e.Msg }
func (e *RuntimeError) Unwrap() error   { return e.Cause }
func (e *RuntimeError) CausedBy(cause error) *RuntimeError {
	e.Cause = cause
	return e
}

func (e *RuntimeError) Is(target error) bool {
	t, ok := target.(*RuntimeError)
	return ok && t.Condition == e.Condition
}

// --- Error Reporting ---

// DisplayErrors prints a list of Minic errors to stderr in a user-friendly
// format, including the source line and position marker.
func DisplayErrors(source string, errors []MinicError) {
	if len(errors) == 0 {
		return
	}

	lines := strings.Split(source, "\n")

	for _, err := range errors {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		// Ensure line numbers are within bounds (1-based index)
		lineIdx := pos.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			// Print a generic error if line info is invalid
			fmt.Fprintf(os.Stderr, "%s Error: %s\n", kind, msg)
			continue
		}

		sourceLine := lines[lineIdx]
		trimmedLine := strings.TrimRight(sourceLine, "\r\n\t ")

		// Format: <Kind> Error at <Line>:<Column>: <Message>
		fmt.Fprintf(os.Stderr, "%s Error at %d:%d: %s\n", kind, pos.Line, pos.Column, msg)

		// Print the source line
		fmt.Fprintf(os.Stderr, "  %s\n", trimmedLine)

		// Print the marker line (^). Column is relative to the original line start.
		marker := strings.Repeat(" ", pos.Column) + "^"
		fmt.Fprintf(os.Stderr, "  %s\n", marker)
		fmt.Fprintln(os.Stderr) // Add a blank line between errors
	}
}
