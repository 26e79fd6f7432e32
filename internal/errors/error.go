package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryProjection Category = "projection"
	CategoryConfig     Category = "config"
	CategoryStorage    Category = "storage"
	CategoryPreview    Category = "preview"
	CategoryCLI        Category = "cli"
)

// Location identifies a node slot inside a view registry.
type Location struct {
	View  int
	Index int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("view %d, node %d", l.View, l.Index)
}

// EngineError is a structured error with a code, location and suggestion.
type EngineError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (runtime, projection, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the view/node slot where the error occurred.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Location != nil {
		msg += " (" + e.Location.String() + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *EngineError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an EngineError with the same code.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithLocation records the view id and node index the error refers to.
func (e *EngineError) WithLocation(view, index int) *EngineError {
	e.Location = &Location{View: view, Index: index}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *EngineError) WithSuggestion(s string) *EngineError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *EngineError) WithDetail(d string) *EngineError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with formatting.
func (e *EngineError) WithDetailf(format string, args ...any) *EngineError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *EngineError) Wrap(err error) *EngineError {
	e.Wrapped = err
	return e
}

// New creates an EngineError from a registered error code.
func New(code string) *EngineError {
	template, ok := registry[code]
	if !ok {
		return &EngineError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &EngineError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new EngineError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *EngineError {
	return &EngineError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an EngineError.
func FromError(err error, code string) *EngineError {
	if err == nil {
		return nil
	}
	var ee *EngineError
	if stderrors.As(err, &ee) {
		return ee
	}
	return New(code).Wrap(err)
}

// IsCode reports whether err is, or wraps, an EngineError with the given code.
func IsCode(err error, code string) bool {
	var ee *EngineError
	for err != nil {
		if !stderrors.As(err, &ee) {
			return false
		}
		if ee.Code == code {
			return true
		}
		err = ee.Wrapped
	}
	return false
}
