package form

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formengine/pkg/condition"
	"github.com/goliatone/go-formengine/pkg/schema"
	"github.com/goliatone/go-formengine/pkg/validation"
)

// Bind validates form and returns a Context holding its value store. Every
// violation is collected into a *SchemaError: empty or duplicate field names,
// unknown field types, choice fields without options, invalid patterns, and
// unresolved custom validators. Nothing is bound when any issue is found.
func Bind(form schema.FormSchema, options ...Option) (*Context, error) {
	c := &Context{
		id:        uuid.NewString(),
		evaluator: condition.Default(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	overrides := validation.DefaultMessages().Merge(form.ValidationMessages).Merge(c.messages)

	issues := structuralIssues(form)
	fields := make([]boundField, len(form.Fields))
	for i, spec := range form.Fields {
		checks, err := validation.CompileField(spec, overrides, c.registry)
		if err != nil {
			issues = append(issues, compileIssues(spec.Name, err)...)
		}
		fields[i] = boundField{spec: spec, checks: checks}
	}
	if len(issues) > 0 {
		return nil, &SchemaError{Issues: issues}
	}

	c.schema = form
	c.schema.Fields = append([]schema.FieldSpec(nil), form.Fields...)
	c.fields = fields
	c.index = make(map[string]int, len(fields))
	for i, field := range fields {
		c.index[field.spec.Name] = i
	}

	for _, anomaly := range condition.Inspect(form) {
		c.logger.Warn("form: condition treated as satisfied",
			"form_id", c.id,
			"field", anomaly.Field,
			"reference", anomaly.Condition.Field,
			"operator", string(anomaly.Condition.Operator),
			"reason", anomaly.Reason,
		)
	}

	c.defaults = c.initialValues()
	c.Reset()

	c.logger.Debug("form: schema bound", "form_id", c.id, "title", form.Title, "fields", len(fields))
	return c, nil
}

func structuralIssues(form schema.FormSchema) []SchemaIssue {
	var issues []SchemaIssue
	if len(form.Fields) == 0 {
		issues = append(issues, SchemaIssue{Message: "schema declares no fields"})
	}

	seen := make(map[string]struct{}, len(form.Fields))
	for i, field := range form.Fields {
		name := field.Name
		if strings.TrimSpace(name) == "" {
			issues = append(issues, SchemaIssue{Message: fmt.Sprintf("field at index %d has an empty name", i)})
		} else if _, dup := seen[name]; dup {
			issues = append(issues, SchemaIssue{Field: name, Message: "duplicate field name"})
		}
		seen[name] = struct{}{}

		if !field.Type.Valid() {
			issues = append(issues, SchemaIssue{Field: name, Message: fmt.Sprintf("unknown field type %q", field.Type)})
		}
		if field.Type.IsChoice() && len(field.Options) == 0 {
			issues = append(issues, SchemaIssue{Field: name, Message: fmt.Sprintf("%s field requires options", field.Type)})
		}
	}
	return issues
}

func compileIssues(field string, err error) []SchemaIssue {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	issues := make([]SchemaIssue, 0, len(errs))
	for _, e := range errs {
		var (
			patternErr *validation.PatternError
			unknownErr *validation.UnknownValidatorError
			message    string
		)
		switch {
		case errors.As(e, &patternErr):
			message = fmt.Sprintf("invalid pattern %q: %v", patternErr.Pattern, patternErr.Err)
		case errors.As(e, &unknownErr):
			message = fmt.Sprintf("custom validator %q is not registered", unknownErr.Name)
		default:
			message = e.Error()
		}
		issues = append(issues, SchemaIssue{Field: field, Message: message})
	}
	return issues
}

// initialValues layers seeded values over field defaults.
func (c *Context) initialValues() map[string]any {
	values := make(map[string]any)
	for _, field := range c.fields {
		if field.spec.DefaultValue != nil {
			values[field.spec.Name] = deepCopy(field.spec.DefaultValue)
		}
	}
	for name, value := range c.seed {
		if _, ok := c.index[name]; !ok {
			c.logger.Warn("form: ignoring seeded value for unknown field", "form_id", c.id, "field", name)
			continue
		}
		values[name] = deepCopy(value)
	}
	return values
}
