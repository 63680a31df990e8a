package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the base type for all delegen errors. It carries a machine
// readable code, the source location of the offending declaration, free-form
// context, and suggestions shown by the CLI reporter.
type Error struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Marker and request errors
	SyntaxErrorCode
	ConfigurationErrorCode

	// Resolution and synthesis errors
	ResolutionErrorCode
	CollisionErrorCode

	// Host integration errors
	InternalStateErrorCode
	EmissionErrorCode
	FileSystemErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case ResolutionErrorCode:
		return "ResolutionError"
	case CollisionErrorCode:
		return "CollisionError"
	case InternalStateErrorCode:
		return "InternalStateError"
	case EmissionErrorCode:
		return "EmissionError"
	case FileSystemErrorCode:
		return "FileSystemError"
	default:
		return "UnknownError"
	}
}

// SourceLocation represents where an error occurred in source code
type SourceLocation struct {
	File   string // file path where error occurred
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Loc.IsEmpty() {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Loc.String(), e.Code, e.Message)
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *Error) Unwrap() error {
	return e.Cause
}

// Context returns the error context data
func (e *Error) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *Error) Suggestions() []string {
	return e.Hints
}

// WithLocation adds location information to the error
func (e *Error) WithLocation(loc SourceLocation) *Error {
	e.Loc = loc
	return e
}

// WithCause adds an underlying error cause
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// WithSuggestions adds multiple helpful suggestions
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new Error with the specified code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new Error with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// Wrapf creates a new error that wraps another error with formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// NewConfiguration reports an invalid marker payload (the exclusive-or
// constraint between the single and list slots, or an empty request).
func NewConfiguration(format string, args ...interface{}) *Error {
	return Newf(ConfigurationErrorCode, format, args...)
}

// NewResolution reports a mismatch between requested and matched contracts.
func NewResolution(format string, args ...interface{}) *Error {
	return Newf(ResolutionErrorCode, format, args...)
}

// NewCollision reports a method name required by two delegated contracts.
func NewCollision(format string, args ...interface{}) *Error {
	return Newf(CollisionErrorCode, format, args...)
}

// NewInternalState reports use of the toolchain handle before it was loaded.
func NewInternalState(format string, args ...interface{}) *Error {
	return Newf(InternalStateErrorCode, format, args...)
}

// NewEmission reports a failed write of a generated file.
func NewEmission(cause error, format string, args ...interface{}) *Error {
	return Wrapf(EmissionErrorCode, cause, format, args...)
}

// NewSyntax reports a malformed marker comment.
func NewSyntax(format string, args ...interface{}) *Error {
	return Newf(SyntaxErrorCode, format, args...)
}

// CodeOf extracts the ErrorCode from an error chain, or UnknownErrorCode if
// no *Error is present.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return UnknownErrorCode
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// As extracts the first *Error from an error chain
func As(err error, target **Error) bool {
	return stderrors.As(err, target)
}
