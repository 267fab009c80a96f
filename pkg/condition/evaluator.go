package condition

import (
	"strings"

	"github.com/goliatone/go-formengine/internal/coerce"
	"github.com/goliatone/go-formengine/pkg/schema"
)

// Evaluator decides whether a list of conditions holds for the given values.
// Implementations must be pure: the same conditions and values always yield
// the same answer.
type Evaluator interface {
	EvaluateAll(conditions []schema.FieldCondition, values map[string]any) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(conditions []schema.FieldCondition, values map[string]any) bool

// EvaluateAll delegates to the underlying function.
func (fn EvaluatorFunc) EvaluateAll(conditions []schema.FieldCondition, values map[string]any) bool {
	return fn(conditions, values)
}

// Default returns the operator-based evaluator used by the form engine.
func Default() Evaluator {
	return EvaluatorFunc(EvaluateAll)
}

// EvaluateAll reports whether every condition holds. An empty or nil list is
// always satisfied.
func EvaluateAll(conditions []schema.FieldCondition, values map[string]any) bool {
	for _, cond := range conditions {
		if !Evaluate(cond, values) {
			return false
		}
	}
	return true
}

// Evaluate applies a single condition to the current value of cond.Field.
func Evaluate(cond schema.FieldCondition, values map[string]any) bool {
	fieldValue := values[cond.Field]

	switch cond.Operator {
	case schema.OperatorEquals:
		return coerce.Equal(fieldValue, cond.Value)
	case schema.OperatorNotEquals:
		return !coerce.Equal(fieldValue, cond.Value)
	case schema.OperatorContains:
		return contains(fieldValue, cond.Value)
	case schema.OperatorGreaterThan:
		return coerce.Number(fieldValue) > coerce.Number(cond.Value)
	case schema.OperatorLessThan:
		return coerce.Number(fieldValue) < coerce.Number(cond.Value)
	case schema.OperatorHasValue:
		return !coerce.Absent(fieldValue)
	default:
		return true
	}
}

// contains tests membership when the field holds a sequence and substring
// inclusion of the rendered texts otherwise.
func contains(fieldValue, want any) bool {
	if items, ok := coerce.Sequence(fieldValue); ok {
		for _, item := range items {
			if coerce.Equal(item, want) {
				return true
			}
		}
		return false
	}
	return strings.Contains(coerce.String(fieldValue), coerce.String(want))
}

// Anomaly describes a condition that evaluates by falling back rather than by
// its declared operator.
type Anomaly struct {
	Field     string
	Condition schema.FieldCondition
	Reason    string
}

// Inspect lists the conditions of form whose operator is unknown or whose
// field reference dangles. Such conditions still evaluate; the report exists
// so callers can log them.
func Inspect(form schema.FormSchema) []Anomaly {
	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		known[field.Name] = struct{}{}
	}

	var out []Anomaly
	for _, field := range form.Fields {
		for _, cond := range field.Conditions() {
			if !cond.Operator.Known() {
				out = append(out, Anomaly{Field: field.Name, Condition: cond, Reason: "unknown operator"})
			}
			if _, ok := known[cond.Field]; !ok {
				out = append(out, Anomaly{Field: field.Name, Condition: cond, Reason: "unknown field reference"})
			}
		}
	}
	return out
}
