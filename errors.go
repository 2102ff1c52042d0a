package koi

import (
	"errors"
	"fmt"
)

// Accessor-level sentinel errors. These are purely local: the failing call
// reports the error and leaves all data structures unchanged.
var (
	// ErrTypeMismatch is returned by typed accessors when the target
	// parameter has a different kind than the one requested.
	ErrTypeMismatch = errors.New("koi: parameter type mismatch")
	// ErrIndexRange is returned for out-of-bounds parameter or element
	// indexes.
	ErrIndexRange = errors.New("koi: index out of range")
	// ErrKeyNotFound is returned by dict lookups for unknown keys.
	ErrKeyNotFound = errors.New("koi: key not found")
)

// Parse error codes (exported consts for stable matching by convention).
const (
	CodeUnterminatedString = "unterminated_string"
	CodeInvalidEscape      = "invalid_escape"
	CodeBadNumber          = "bad_number"
	CodeUnclosedComposite  = "unclosed_composite"
	CodeDuplicateKey       = "duplicate_key"
	CodeUnexpectedInput    = "unexpected_input"
	CodeEmptyCommand       = "empty_command"
	CodeDecode             = "decode_error"
	CodeIO                 = "io_error"
)

// ParseError is the immutable diagnostic produced by the parser: a stable
// code, a human-readable message and an optional 1-based (line, column)
// position.
type ParseError struct {
	code   string
	msg    string
	line   int // 0 when unknown
	column int // 0 when unknown
	source string
	cause  error
}

func newParseError(code, msg string, line, column int) *ParseError {
	return &ParseError{code: code, msg: msg, line: line, column: column}
}

// Code returns the stable error code.
func (e *ParseError) Code() string { return e.code }

// Message returns the message without position information.
func (e *ParseError) Message() string { return e.msg }

// Line returns the 1-based line; ok is false when no position was recorded.
func (e *ParseError) Line() (line int, ok bool) {
	if e.line == 0 {
		return 0, false
	}
	return e.line, true
}

// Column returns the 1-based column; ok is false when no position was
// recorded.
func (e *ParseError) Column() (column int, ok bool) {
	if e.column == 0 {
		return 0, false
	}
	return e.column, true
}

// Source returns the source name attached for diagnostics, or "".
func (e *ParseError) Source() string { return e.source }

// Error renders the message, appending the position when present and the
// source name when known.
func (e *ParseError) Error() string {
	s := e.msg
	if e.line > 0 && e.column > 0 {
		s = fmt.Sprintf("%s at line %d, column %d", s, e.line, e.column)
	} else if e.line > 0 {
		s = fmt.Sprintf("%s at line %d", s, e.line)
	}
	if e.source != "" {
		s = fmt.Sprintf("%s (source: %s)", s, e.source)
	}
	return s
}

// Unwrap exposes the underlying cause, when the diagnostic wraps a decode or
// I/O failure, for errors.Is/As chains.
func (e *ParseError) Unwrap() error { return e.cause }

func (e *ParseError) withSource(name string) *ParseError {
	e.source = name
	return e
}

// AsParseError extracts a *ParseError from an error using errors.As
// internally.
func AsParseError(err error) (*ParseError, bool) {
	if err == nil {
		return nil, false
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
