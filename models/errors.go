package models

import (
	"sort"
	"strings"
)

// ErrorValidation carries field level messages for bad or duplicate input.
type ErrorValidation struct {
	Fields map[string][]string
}

func NewValidationError(field, message string) *ErrorValidation {
	return &ErrorValidation{Fields: map[string][]string{field: {message}}}
}

// Add appends a message for field and returns the receiver for chaining.
func (e *ErrorValidation) Add(field, message string) *ErrorValidation {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *ErrorValidation) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ErrorValidation) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ErrorParse reports a malformed, missing or forged request value.
type ErrorParse struct {
	Field   string
	Message string
}

func (e *ErrorParse) Error() string {
	return e.Field + ": " + e.Message
}

type ErrorNotFound struct {
	Field   string
	Message string
}

func (e *ErrorNotFound) Error() string {
	return e.Message
}

type ErrorUnauthorized struct {
	Message string
}

func (e *ErrorUnauthorized) Error() string {
	return e.Message
}

type ErrorForbidden struct {
	Message string
}

func (e *ErrorForbidden) Error() string {
	return e.Message
}
