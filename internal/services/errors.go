package services

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyReply is returned when the model answers the new message with no text.
var ErrEmptyReply = errors.New("model returned an empty response")

type ValidationError struct {
	Fields map[string]string
}

// Error lists the failing fields sorted by name.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "Validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + e.Fields[field]
	}
	return strings.Join(parts, "; ")
}

// UpstreamError wraps any failure talking to the model provider. Its message
// is the cause's message, unchanged.
type UpstreamError struct{ Err error }

func (e *UpstreamError) Error() string { return e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }
