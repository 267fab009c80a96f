package form

import "github.com/goliatone/go-formengine/pkg/validation"

// FieldRuntimeState is the derived, never persisted status of one field.
type FieldRuntimeState struct {
	Name     string               `json:"name"`
	Visible  bool                 `json:"visible"`
	Enabled  bool                 `json:"enabled"`
	Required bool                 `json:"required"`
	Readonly bool                 `json:"readonly,omitempty"`
	Touched  bool                 `json:"touched"`
	Errors   []validation.Failure `json:"errors,omitempty"`
}

// Valid reports whether every active check passes.
func (s FieldRuntimeState) Valid() bool {
	return len(s.Errors) == 0
}

// VisibleErrors returns the failures to present: all of them once the field
// is touched, none before.
func (s FieldRuntimeState) VisibleErrors() []validation.Failure {
	if !s.Touched {
		return nil
	}
	return s.Errors
}

// Blocking reports whether the field prevents submission.
func (s FieldRuntimeState) Blocking() bool {
	return s.Visible && s.Enabled && !s.Valid()
}

func (s FieldRuntimeState) clone() FieldRuntimeState {
	if len(s.Errors) > 0 {
		s.Errors = append([]validation.Failure(nil), s.Errors...)
	}
	return s
}
