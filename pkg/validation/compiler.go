package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"

	"github.com/goliatone/go-formengine/internal/coerce"
	"github.com/goliatone/go-formengine/pkg/schema"
)

// Failure is the typed result of a failing check.
type Failure struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// CheckFunc inspects a field value, with the full value snapshot available
// for cross-field rules. It returns nil when the value passes.
type CheckFunc func(value any, values map[string]any) *Failure

// Check is one compiled validation rule.
type Check struct {
	Kind Kind
	fn   CheckFunc
}

// NewCheck wraps fn as a Check of the given kind.
func NewCheck(kind Kind, fn CheckFunc) Check {
	return Check{Kind: kind, fn: fn}
}

// Run executes the check. A zero Check always passes.
func (c Check) Run(value any, values map[string]any) *Failure {
	if c.fn == nil {
		return nil
	}
	return c.fn(value, values)
}

// PatternError reports a pattern that is not a valid regular expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("validation: invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// UnknownValidatorError reports a custom validator reference that the
// registry cannot resolve.
type UnknownValidatorError struct {
	Name string
}

func (e *UnknownValidatorError) Error() string {
	return fmt.Sprintf("validation: custom validator %q is not registered", e.Name)
}

// Compile turns spec into its ordered checks:
// required, pattern, minLength, maxLength, min, max, custom.
// A check is present only when its property is set. overrides are merged over
// DefaultMessages. An invalid pattern is reported here rather than at check
// time. spec.CustomRef is ignored; use CompileField to resolve references.
func Compile(spec schema.ValidationSpec, overrides map[string]string) ([]Check, error) {
	return compile(spec, false, DefaultMessages().Merge(overrides))
}

// CompileField compiles the checks for field. Requiredness comes from the
// field or its validation spec, and a field with requiredWhen conditions also
// gets a required check so the caller can apply it when the conditions hold.
// Email fields gain an email check right after required. Named custom
// validators are resolved through registry. Every problem found is returned,
// joined into a single error.
func CompileField(field schema.FieldSpec, overrides map[string]string, registry *Registry) ([]Check, error) {
	var spec schema.ValidationSpec
	if field.Validation != nil {
		spec = *field.Validation
	}
	spec.Required = field.BaseRequired() || len(field.RequiredWhen) > 0

	var errs []error
	if spec.Custom == nil && spec.CustomRef != "" {
		fn, ok := registry.Lookup(spec.CustomRef)
		if !ok {
			errs = append(errs, &UnknownValidatorError{Name: spec.CustomRef})
		}
		spec.Custom = fn
	}

	checks, err := compile(spec, field.Type == schema.FieldTypeEmail, DefaultMessages().Merge(overrides))
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return checks, nil
}

func compile(spec schema.ValidationSpec, email bool, messages Messages) ([]Check, error) {
	var checks []Check

	if spec.Required {
		checks = append(checks, requiredCheck(messages.For(KindRequired)))
	}
	if email {
		checks = append(checks, emailCheck(messages.For(KindEmail)))
	}
	if spec.Pattern != "" {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, &PatternError{Pattern: spec.Pattern, Err: err}
		}
		message := spec.Message
		if message == "" {
			message = messages.For(KindPattern)
		}
		checks = append(checks, patternCheck(re, message))
	}
	if spec.MinLength != nil {
		limit := *spec.MinLength
		checks = append(checks, presentCheck(KindMinLength, messages.For(KindMinLength), func(value any) bool {
			return coerce.Length(value) >= limit
		}))
	}
	if spec.MaxLength != nil {
		limit := *spec.MaxLength
		checks = append(checks, presentCheck(KindMaxLength, messages.For(KindMaxLength), func(value any) bool {
			return coerce.Length(value) <= limit
		}))
	}
	if spec.Min != nil {
		bound := *spec.Min
		checks = append(checks, presentCheck(KindMin, messages.For(KindMin), func(value any) bool {
			return coerce.Number(value) >= bound
		}))
	}
	if spec.Max != nil {
		bound := *spec.Max
		checks = append(checks, presentCheck(KindMax, messages.For(KindMax), func(value any) bool {
			return coerce.Number(value) <= bound
		}))
	}
	if spec.Custom != nil {
		checks = append(checks, customCheck(spec.Custom))
	}

	return checks, nil
}

func requiredCheck(message string) Check {
	return NewCheck(KindRequired, func(value any, _ map[string]any) *Failure {
		if coerce.Absent(value) {
			return &Failure{Kind: KindRequired, Message: message}
		}
		return nil
	})
}

func emailCheck(message string) Check {
	return presentCheck(KindEmail, message, func(value any) bool {
		text := coerce.String(value)
		addr, err := mail.ParseAddress(text)
		return err == nil && addr.Address == text
	})
}

func patternCheck(re *regexp.Regexp, message string) Check {
	return presentCheck(KindPattern, message, func(value any) bool {
		return re.MatchString(coerce.String(value))
	})
}

// presentCheck skips absent values so only required reports an empty input.
// Zero and false are present and are checked.
func presentCheck(kind Kind, message string, ok func(value any) bool) Check {
	return NewCheck(kind, func(value any, _ map[string]any) *Failure {
		if coerce.Absent(value) || ok(value) {
			return nil
		}
		return &Failure{Kind: kind, Message: message}
	})
}

func customCheck(fn schema.CustomFunc) Check {
	return NewCheck(KindCustom, func(value any, values map[string]any) *Failure {
		ok, message := fn(value, values)
		if ok {
			return nil
		}
		if message == "" {
			message = CustomFailureMessage
		}
		return &Failure{Kind: KindCustom, Message: message}
	})
}

// RunAll executes checks in order and collects every failure.
func RunAll(checks []Check, value any, values map[string]any) []Failure {
	var out []Failure
	for _, check := range checks {
		if failure := check.Run(value, values); failure != nil {
			out = append(out, *failure)
		}
	}
	return out
}
