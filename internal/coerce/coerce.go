// Package coerce holds the loose value conversions shared by the condition
// evaluator and the validator compiler. Values arrive as `any` because they
// come from decoded JSON/YAML documents, prompt answers, or Go callers, so the
// helpers accept every shape and never panic.
package coerce

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Absent reports whether value counts as "no value": nil or the empty string.
// Zero, false, and empty slices are present.
func Absent(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

// Number converts value to a float64. Unconvertible input yields NaN so
// ordered comparisons against it are always false.
func Number(value any) float64 {
	if value == nil {
		return math.NaN()
	}
	if f, ok := numeric(value); ok {
		return f
	}
	switch v := value.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		return parseNumber(v)
	case []byte:
		return parseNumber(string(v))
	case fmt.Stringer:
		return parseNumber(v.String())
	default:
		return math.NaN()
	}
}

func parseNumber(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// numeric reports the float64 form of any Go integer or float kind.
func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// String renders value the way it would be typed into an input. nil renders
// as the empty string and sequences join their elements with commas.
func String(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}
	if f, ok := numeric(value); ok {
		return formatNumber(f)
	}
	if items, ok := Sequence(value); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = String(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(value)
}

// Sequence returns the elements of a slice or array value. Byte slices are
// treated as text, not as sequences.
func Sequence(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Equal is strict equality: no conversion between strings, numbers and
// booleans. Every Go numeric kind is treated as the same number type, and
// non-comparable values (slices, maps) are never equal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, aNum := numeric(a)
	fb, bNum := numeric(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return comparableEqual(a, b)
}

// comparableEqual guards against structs holding non-comparable dynamic
// values, which make == panic even when the static type is comparable.
func comparableEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}

// Length measures value: runes for text, elements for sequences and maps,
// and the rendered text length for everything else.
func Length(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return utf8.RuneCountInString(v)
	case []byte:
		return utf8.RuneCount(v)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return utf8.RuneCountInString(String(value))
	}
}

// formatNumber renders f in plain notation below 1e21 and in exponent
// notation ("1e+21") from there on.
func formatNumber(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
