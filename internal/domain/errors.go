// Package domain defines the core types, interfaces, and errors shared by
// the decomposition engine, the query runner, and their front ends.
package domain

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UnavailableError indicates an optional backend (such as the query runner)
// is not configured.
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string { return e.Message }

// ParseError reports SQL the parser rejected. Line and Column are 1-based;
// Offset is the byte offset into the input.
type ParseError struct {
	Message string
	Line    int
	Column  int
	Offset  int
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "sql parse error: " + e.Message
	}
	return fmt.Sprintf("sql parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// NewParseError builds a ParseError for the given byte offset of input.
func NewParseError(input string, offset int, format string, args ...interface{}) *ParseError {
	if offset > len(input) {
		offset = len(input)
	}
	if offset < 0 {
		offset = 0
	}
	prefix := input[:offset]
	line := strings.Count(prefix, "\n") + 1
	col := offset - strings.LastIndexByte(prefix, '\n')
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  col,
		Offset:  offset,
	}
}

// DepthError reports a statement nested deeper than the configured limit.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("statement nesting exceeds maximum depth of %d", e.Limit)
}

// ExecutionError wraps a failure reported by the database while running a
// statement.
type ExecutionError struct {
	Statement string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute statement: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnavailable creates an UnavailableError with a formatted message.
func ErrUnavailable(format string, args ...interface{}) *UnavailableError {
	return &UnavailableError{Message: fmt.Sprintf(format, args...)}
}
