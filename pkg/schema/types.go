package schema

// FieldType enumerates the input kinds a form field can take.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeDate        FieldType = "date"
	FieldTypeDropdown    FieldType = "dropdown"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeEmail       FieldType = "email"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeDate, FieldTypeDropdown, FieldTypeMultiselect,
		FieldTypeCheckbox, FieldTypeTextarea, FieldTypeNumber, FieldTypeEmail:
		return true
	default:
		return false
	}
}

// IsChoice reports whether the type picks from a fixed option list.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeDropdown || t == FieldTypeMultiselect
}

// Operator names the comparison a FieldCondition applies.
type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "notEquals"
	OperatorContains    Operator = "contains"
	OperatorGreaterThan Operator = "greaterThan"
	OperatorLessThan    Operator = "lessThan"
	OperatorHasValue    Operator = "hasValue"
)

// Known reports whether op is one of the supported operators.
func (op Operator) Known() bool {
	switch op {
	case OperatorEquals, OperatorNotEquals, OperatorContains,
		OperatorGreaterThan, OperatorLessThan, OperatorHasValue:
		return true
	default:
		return false
	}
}

// FieldCondition is a predicate over another field's current value. Field
// should name a field of the same schema; a bound form treats a dangling
// reference as satisfied.
type FieldCondition struct {
	Field    string   `json:"field" yaml:"field"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty"`
}

// CustomFunc is a caller-supplied check. Returning ok passes; otherwise the
// message is surfaced, or "Invalid value" when message is empty.
type CustomFunc func(value any, values map[string]any) (ok bool, message string)

// ValidationSpec lists the checks applied to a field. A check is compiled only
// when its property is set; pointer bounds keep a zero bound distinguishable
// from an unset one.
type ValidationSpec struct {
	Required  bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message   string   `json:"message,omitempty" yaml:"message,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// CustomRef names a validator registered with the binder. Documents use
	// the "custom" key; Go callers may set Custom directly instead.
	CustomRef string     `json:"custom,omitempty" yaml:"custom,omitempty"`
	Custom    CustomFunc `json:"-" yaml:"-"`
}

// FieldSpec describes one named, typed entry of a form.
type FieldSpec struct {
	Name         string           `json:"name" yaml:"name"`
	Label        string           `json:"label" yaml:"label"`
	Type         FieldType        `json:"type" yaml:"type"`
	Required     bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Validation   *ValidationSpec  `json:"validation,omitempty" yaml:"validation,omitempty"`
	Options      []string         `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder  string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Tooltip      string           `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	DefaultValue any              `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Disabled     bool             `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Readonly     bool             `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Hidden       bool             `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	ClassName    string           `json:"className,omitempty" yaml:"className,omitempty"`
	VisibleWhen  []FieldCondition `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
	EnabledWhen  []FieldCondition `json:"enabledWhen,omitempty" yaml:"enabledWhen,omitempty"`
	RequiredWhen []FieldCondition `json:"requiredWhen,omitempty" yaml:"requiredWhen,omitempty"`
}

// BaseRequired reports the static requiredness declared either on the field
// or on its validation spec.
func (f FieldSpec) BaseRequired() bool {
	return f.Required || (f.Validation != nil && f.Validation.Required)
}

// Conditions returns every condition the field declares, in visibility,
// enablement, requiredness order.
func (f FieldSpec) Conditions() []FieldCondition {
	total := len(f.VisibleWhen) + len(f.EnabledWhen) + len(f.RequiredWhen)
	if total == 0 {
		return nil
	}
	out := make([]FieldCondition, 0, total)
	out = append(out, f.VisibleWhen...)
	out = append(out, f.EnabledWhen...)
	out = append(out, f.RequiredWhen...)
	return out
}

// FormSchema is the immutable description of a form. ValidationMessages
// overrides the default message table for every field of the form.
type FormSchema struct {
	Title              string            `json:"title" yaml:"title"`
	Fields             []FieldSpec       `json:"fields" yaml:"fields"`
	ClassName          string            `json:"className,omitempty" yaml:"className,omitempty"`
	ValidationMessages map[string]string `json:"validationMessages,omitempty" yaml:"validationMessages,omitempty"`
}

// Field returns the first field named name.
func (s FormSchema) Field(name string) (FieldSpec, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// Names lists field names in declaration order.
func (s FormSchema) Names() []string {
	if len(s.Fields) == 0 {
		return nil
	}
	out := make([]string, len(s.Fields))
	for i, field := range s.Fields {
		out[i] = field.Name
	}
	return out
}
