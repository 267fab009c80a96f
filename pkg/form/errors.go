package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formengine/pkg/validation"
)

var (
	// ErrUnknownField is wrapped by every UnknownFieldError.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidSchema is wrapped by every SchemaError.
	ErrInvalidSchema = errors.New("form: invalid schema")
	// ErrSubmissionBlocked is wrapped by every SubmitError.
	ErrSubmissionBlocked = errors.New("form: submission blocked")
)

// SchemaIssue is one schema violation found at bind time. Field is empty for
// form-level problems.
type SchemaIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaError lists every violation found while binding a schema.
type SchemaError struct {
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrInvalidSchema.Error()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if issue.Field == "" {
			parts[i] = issue.Message
			continue
		}
		parts[i] = fmt.Sprintf("field %q: %s", issue.Field, issue.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSchema, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidSchema
}

// UnknownFieldError is returned when a caller names a field the schema does
// not declare. The context is left unchanged.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownField, e.Field)
}

func (e *UnknownFieldError) Unwrap() error {
	return ErrUnknownField
}

// FieldError is one failing check of one field, as reported by Submit.
type FieldError struct {
	Field   string          `json:"field"`
	Kind    validation.Kind `json:"kind"`
	Message string          `json:"message"`
}

// SubmitError carries the failures that blocked a submission, ordered by
// field declaration order and then by check order.
type SubmitError struct {
	Fields []FieldError
}

func (e *SubmitError) Error() string {
	if e == nil {
		return ErrSubmissionBlocked.Error()
	}
	return fmt.Sprintf("%s: %d field error(s)", ErrSubmissionBlocked, len(e.Fields))
}

func (e *SubmitError) Unwrap() error {
	return ErrSubmissionBlocked
}

// ByField groups the failures by field name, keeping check order.
func (e *SubmitError) ByField() map[string][]string {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, fe := range e.Fields {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}
