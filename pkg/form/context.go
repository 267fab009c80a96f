package form

import (
	"log/slog"

	"github.com/goliatone/go-formengine/pkg/condition"
	"github.com/goliatone/go-formengine/pkg/schema"
	"github.com/goliatone/go-formengine/pkg/validation"
)

// Context is a bound form instance: the schema, its compiled checks, the
// value store, the touched set, and the runtime state derived from them.
type Context struct {
	id        string
	schema    schema.FormSchema
	fields    []boundField
	index     map[string]int
	evaluator condition.Evaluator
	registry  *validation.Registry
	logger    *slog.Logger
	messages  map[string]string
	seed      map[string]any
	defaults  map[string]any

	values  map[string]any
	touched map[string]bool
	states  []FieldRuntimeState
}

type boundField struct {
	spec   schema.FieldSpec
	checks []validation.Check
}

// ID identifies this form instance in logs.
func (c *Context) ID() string {
	return c.id
}

// Schema returns the bound schema.
func (c *Context) Schema() schema.FormSchema {
	return c.schema
}

// Field returns the spec of the named field.
func (c *Context) Field(name string) (schema.FieldSpec, error) {
	idx, ok := c.index[name]
	if !ok {
		return schema.FieldSpec{}, &UnknownFieldError{Field: name}
	}
	return c.fields[idx].spec, nil
}

// SetValue stores value for the named field and recomputes the runtime
// state of every field.
func (c *Context) SetValue(name string, value any) error {
	if _, ok := c.index[name]; !ok {
		return &UnknownFieldError{Field: name}
	}
	c.values[name] = deepCopy(value)
	c.refresh()
	return nil
}

// Value returns the current value of the named field; nil when unset.
func (c *Context) Value(name string) (any, error) {
	if _, ok := c.index[name]; !ok {
		return nil, &UnknownFieldError{Field: name}
	}
	return c.values[name], nil
}

// Values returns a copy of the value store.
func (c *Context) Values() map[string]any {
	return cloneValues(c.values)
}

// RuntimeState returns a snapshot of the named field's derived state.
func (c *Context) RuntimeState(name string) (FieldRuntimeState, error) {
	idx, ok := c.index[name]
	if !ok {
		return FieldRuntimeState{}, &UnknownFieldError{Field: name}
	}
	return c.states[idx].clone(), nil
}

// States returns snapshots of every field's state in declaration order.
func (c *Context) States() []FieldRuntimeState {
	out := make([]FieldRuntimeState, len(c.states))
	for i, state := range c.states {
		out[i] = state.clone()
	}
	return out
}

// Touch marks the named field as touched so its failures become visible.
func (c *Context) Touch(name string) error {
	idx, ok := c.index[name]
	if !ok {
		return &UnknownFieldError{Field: name}
	}
	c.touched[name] = true
	c.states[idx].Touched = true
	return nil
}

// TouchAll marks every field as touched.
func (c *Context) TouchAll() {
	for i, field := range c.fields {
		c.touched[field.spec.Name] = true
		c.states[i].Touched = true
	}
}

// Submit returns a copy of the value store when no visible and enabled field
// has a failing check. Otherwise it marks every field touched and returns a
// *SubmitError listing the blocking failures. Hidden and disabled fields
// never block.
func (c *Context) Submit() (map[string]any, error) {
	var failures []FieldError
	for _, state := range c.states {
		if !state.Blocking() {
			continue
		}
		for _, failure := range state.Errors {
			failures = append(failures, FieldError{
				Field:   state.Name,
				Kind:    failure.Kind,
				Message: failure.Message,
			})
		}
	}

	if len(failures) > 0 {
		c.TouchAll()
		c.logger.Debug("form: submission blocked", "form_id", c.id, "errors", len(failures))
		return nil, &SubmitError{Fields: failures}
	}

	c.logger.Debug("form: submitted", "form_id", c.id)
	return c.Values(), nil
}

// Reset restores the seeded and default values and clears the touched set.
func (c *Context) Reset() {
	c.values = cloneValues(c.defaults)
	c.touched = make(map[string]bool, len(c.fields))
	c.refresh()
}

// refresh re-derives every field's state from the schema, the value store and
// the touched set. It is idempotent.
func (c *Context) refresh() {
	snapshot := cloneValues(c.values)
	states := make([]FieldRuntimeState, len(c.fields))
	for i, field := range c.fields {
		states[i] = c.derive(field, snapshot)
	}
	c.states = states
}

func (c *Context) derive(field boundField, values map[string]any) FieldRuntimeState {
	spec := field.spec
	state := FieldRuntimeState{
		Name:     spec.Name,
		Visible:  !spec.Hidden && c.holds(spec.VisibleWhen, values),
		Enabled:  !spec.Disabled && c.holds(spec.EnabledWhen, values),
		Readonly: spec.Readonly,
		Touched:  c.touched[spec.Name],
	}
	if len(spec.RequiredWhen) > 0 {
		state.Required = c.holds(spec.RequiredWhen, values)
	} else {
		state.Required = spec.BaseRequired()
	}

	value := values[spec.Name]
	for _, check := range field.checks {
		if check.Kind == validation.KindRequired && !state.Required {
			continue
		}
		if failure := check.Run(value, values); failure != nil {
			state.Errors = append(state.Errors, *failure)
		}
	}
	return state
}

// holds reports whether every condition is satisfied. Conditions that
// reference a field outside the schema count as satisfied, and an empty list
// always holds, whatever the configured evaluator does.
func (c *Context) holds(conditions []schema.FieldCondition, values map[string]any) bool {
	active := make([]schema.FieldCondition, 0, len(conditions))
	for _, cond := range conditions {
		if _, ok := c.index[cond.Field]; ok {
			active = append(active, cond)
		}
	}
	if len(active) == 0 {
		return true
	}
	return c.evaluator.EvaluateAll(active, values)
}
