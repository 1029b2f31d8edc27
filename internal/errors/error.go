package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender Category = "render"
	CategoryConfig Category = "config"
	CategoryStore  Category = "store"
	CategoryCLI    Category = "cli"
)

// Location represents a position in a source or configuration file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// DeuceError is a structured error with a registered code, an explanation
// and an optional fix suggestion.
type DeuceError struct {
	// Code is a unique error identifier (e.g., "D001").
	Code string

	// Category is the error type (render, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position the error refers to, if any.
	Location *Location

	// Context contains the lines surrounding Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DeuceError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DeuceError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file position to the error.
func (e *DeuceError) WithLocation(file string, line, column int) *DeuceError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DeuceError) WithSuggestion(s string) *DeuceError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation of the error.
func (e *DeuceError) WithDetail(d string) *DeuceError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *DeuceError) Wrap(err error) *DeuceError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a DeuceError from a registered error code.
func New(code string) *DeuceError {
	template, ok := registry[code]
	if !ok {
		return &DeuceError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DeuceError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new DeuceError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DeuceError {
	return &DeuceError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DeuceError. Errors of the engine
// get their own code; anything else gets the fallback code.
func FromError(err error, fallback string) *DeuceError {
	if err == nil {
		return nil
	}
	var de *DeuceError
	if As(err, &de) {
		return de
	}
	code := Code(err)
	if code == "" {
		code = fallback
	}
	return New(code).Wrap(err)
}
