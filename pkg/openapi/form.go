package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formengine/internal/coerce"
	"github.com/goliatone/go-formengine/pkg/schema"
)

var (
	// ErrOperationNotFound is returned when the requested operation id is not
	// declared by the document.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned for operations without an object request
	// body.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
)

// FormSchema parses doc and converts the request body of operationID into a
// form schema.
func FormSchema(ctx context.Context, doc Document, operationID string, options ...Option) (schema.FormSchema, error) {
	operations, err := Operations(ctx, doc, options...)
	if err != nil {
		return schema.FormSchema{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		return schema.FormSchema{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	return FromOperation(op)
}

// FromOperation converts the object request body of op into a form schema.
// Fields follow the x-formengine order hint and then property name.
// Properties that cannot be expressed as a single input (nested objects,
// arrays without an enum) are skipped.
func FromOperation(op Operation) (schema.FormSchema, error) {
	if op.Request == nil || op.Request.Value == nil || !isType(op.Request.Value, openapi3.TypeObject) {
		return schema.FormSchema{}, fmt.Errorf("%w: %q", ErrNoRequestBody, op.ID)
	}
	body := op.Request.Value

	var formExt formExtension
	if err := decodeExtension(body.Extensions, &formExt); err != nil {
		return schema.FormSchema{}, fmt.Errorf("operation %q: %w", op.ID, err)
	}

	form := schema.FormSchema{
		Title:              firstNonEmpty(formExt.Title, body.Title, op.Summary, op.ID),
		ClassName:          formExt.ClassName,
		ValidationMessages: formExt.ValidationMessages,
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	type ordered struct {
		order int
		field schema.FieldSpec
	}
	var fields []ordered
	for name, ref := range body.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		field, order, ok, err := convertProperty(name, ref.Value, required[name])
		if err != nil {
			return schema.FormSchema{}, fmt.Errorf("operation %q: property %q: %w", op.ID, name, err)
		}
		if !ok {
			continue
		}
		fields = append(fields, ordered{order: order, field: field})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].order != fields[j].order {
			return fields[i].order < fields[j].order
		}
		return fields[i].field.Name < fields[j].field.Name
	})

	form.Fields = make([]schema.FieldSpec, len(fields))
	for i, entry := range fields {
		form.Fields[i] = entry.field
	}

	form.Title = schema.SanitizeText(form.Title)
	return form, nil
}

func convertProperty(name string, prop *openapi3.Schema, required bool) (schema.FieldSpec, int, bool, error) {
	var ext fieldExtension
	if err := decodeExtension(prop.Extensions, &ext); err != nil {
		return schema.FieldSpec{}, 0, false, err
	}

	fieldType, options, ok := fieldTypeOf(prop, ext.Widget)
	if !ok {
		return schema.FieldSpec{}, 0, false, nil
	}

	field := schema.FieldSpec{
		Name:         name,
		Label:        schema.SanitizeText(firstNonEmpty(ext.Label, prop.Title, Humanize(name))),
		Type:         fieldType,
		Required:     required,
		Options:      options,
		Placeholder:  schema.SanitizeText(ext.Placeholder),
		Tooltip:      schema.SanitizeText(firstNonEmpty(ext.Tooltip, prop.Description)),
		DefaultValue: prop.Default,
		Disabled:     ext.Disabled,
		Readonly:     ext.Readonly || prop.ReadOnly,
		Hidden:       ext.Hidden,
		ClassName:    ext.ClassName,
		VisibleWhen:  ext.VisibleWhen,
		EnabledWhen:  ext.EnabledWhen,
		RequiredWhen: ext.RequiredWhen,
		Validation:   validationOf(prop, ext),
	}

	order := math.MaxInt
	if ext.Order != nil {
		order = *ext.Order
	}
	return field, order, true, nil
}

func fieldTypeOf(prop *openapi3.Schema, widget string) (schema.FieldType, []string, bool) {
	switch {
	case isType(prop, openapi3.TypeBoolean):
		return schema.FieldTypeCheckbox, nil, true
	case isType(prop, openapi3.TypeInteger), isType(prop, openapi3.TypeNumber):
		return schema.FieldTypeNumber, nil, true
	case isType(prop, openapi3.TypeArray):
		if prop.Items == nil || prop.Items.Value == nil || len(prop.Items.Value.Enum) == 0 {
			return "", nil, false
		}
		return schema.FieldTypeMultiselect, enumOptions(prop.Items.Value.Enum), true
	case isType(prop, openapi3.TypeString):
		if len(prop.Enum) > 0 {
			return schema.FieldTypeDropdown, enumOptions(prop.Enum), true
		}
		switch {
		case widget == string(schema.FieldTypeTextarea):
			return schema.FieldTypeTextarea, nil, true
		case prop.Format == "email":
			return schema.FieldTypeEmail, nil, true
		case prop.Format == "date", prop.Format == "date-time":
			return schema.FieldTypeDate, nil, true
		}
		return schema.FieldTypeText, nil, true
	default:
		return "", nil, false
	}
}

func validationOf(prop *openapi3.Schema, ext fieldExtension) *schema.ValidationSpec {
	spec := schema.ValidationSpec{
		Pattern:   prop.Pattern,
		Message:   ext.Message,
		CustomRef: ext.Custom,
	}
	if prop.MinLength > 0 {
		value := int(prop.MinLength)
		spec.MinLength = &value
	}
	if prop.MaxLength != nil {
		value := int(*prop.MaxLength)
		spec.MaxLength = &value
	}
	if prop.Min != nil {
		value := *prop.Min
		spec.Min = &value
	}
	if prop.Max != nil {
		value := *prop.Max
		spec.Max = &value
	}

	if spec.Pattern == "" && spec.Message == "" && spec.CustomRef == "" &&
		spec.MinLength == nil && spec.MaxLength == nil && spec.Min == nil && spec.Max == nil {
		return nil
	}
	return &spec
}

func isType(s *openapi3.Schema, typ string) bool {
	return s.Type != nil && s.Type.Is(typ)
}

func enumOptions(values []any) []string {
	options := make([]string, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		options = append(options, coerce.String(value))
	}
	return options
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
