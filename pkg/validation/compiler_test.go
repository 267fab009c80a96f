package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formengine/pkg/schema"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func kinds(checks []Check) []Kind {
	out := make([]Kind, len(checks))
	for i, check := range checks {
		out[i] = check.Kind
	}
	return out
}

func mustCompile(t *testing.T, spec schema.ValidationSpec, overrides map[string]string) []Check {
	t.Helper()
	checks, err := Compile(spec, overrides)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return checks
}

func TestCompile_OnlyPresentPropertiesInFixedOrder(t *testing.T) {
	t.Parallel()

	if checks := mustCompile(t, schema.ValidationSpec{}, nil); len(checks) != 0 {
		t.Fatalf("empty spec should compile to no checks, got %v", kinds(checks))
	}

	spec := schema.ValidationSpec{
		Custom:    func(any, map[string]any) (bool, string) { return true, "" },
		Max:       floatPtr(10),
		Min:       floatPtr(0),
		MaxLength: intPtr(5),
		MinLength: intPtr(0),
		Pattern:   `^\d+$`,
		Required:  true,
	}
	want := []Kind{KindRequired, KindPattern, KindMinLength, KindMaxLength, KindMin, KindMax, KindCustom}
	if diff := cmp.Diff(want, kinds(mustCompile(t, spec, nil))); diff != "" {
		t.Fatalf("check order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_Required(t *testing.T) {
	t.Parallel()

	check := mustCompile(t, schema.ValidationSpec{Required: true}, nil)[0]

	for _, value := range []any{nil, ""} {
		got := check.Run(value, nil)
		want := &Failure{Kind: KindRequired, Message: "This field is required"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("required(%#v) mismatch (-want +got):\n%s", value, diff)
		}
	}
	for _, value := range []any{"x", 0, false, []any{}} {
		if got := check.Run(value, nil); got != nil {
			t.Fatalf("required(%#v) should pass, got %+v", value, got)
		}
	}
}

func TestCompile_PatternSkipsEmptyValues(t *testing.T) {
	t.Parallel()

	check := mustCompile(t, schema.ValidationSpec{Pattern: `^\d+$`}, nil)[0]

	if got := check.Run("", nil); got != nil {
		t.Fatalf("pattern should skip empty input, got %+v", got)
	}
	if got := check.Run(nil, nil); got != nil {
		t.Fatalf("pattern should skip absent input, got %+v", got)
	}
	if got := check.Run("123", nil); got != nil {
		t.Fatalf("pattern should accept digits, got %+v", got)
	}
	if got := check.Run(0, nil); got != nil {
		t.Fatalf("zero is present and matches the pattern, got %+v", got)
	}
	want := &Failure{Kind: KindPattern, Message: "Please enter a valid value"}
	if diff := cmp.Diff(want, check.Run("abc", nil)); diff != "" {
		t.Fatalf("pattern failure mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_PatternMessagePrecedence(t *testing.T) {
	t.Parallel()

	overrides := map[string]string{"pattern": "Digits only"}

	withOwn := mustCompile(t, schema.ValidationSpec{Pattern: `^\d+$`, Message: "Numbers please"}, overrides)[0]
	if got := withOwn.Run("abc", nil); got == nil || got.Message != "Numbers please" {
		t.Fatalf("spec message should win, got %+v", got)
	}

	withOverride := mustCompile(t, schema.ValidationSpec{Pattern: `^\d+$`}, overrides)[0]
	if got := withOverride.Run("abc", nil); got == nil || got.Message != "Digits only" {
		t.Fatalf("override message should apply, got %+v", got)
	}
}

func TestCompile_InvalidPatternFailsEagerly(t *testing.T) {
	t.Parallel()

	_, err := Compile(schema.ValidationSpec{Pattern: "(unclosed"}, nil)
	var patternErr *PatternError
	if !errors.As(err, &patternErr) {
		t.Fatalf("expected PatternError, got %v", err)
	}
	if patternErr.Pattern != "(unclosed" {
		t.Fatalf("unexpected pattern in error: %q", patternErr.Pattern)
	}
}

func TestCompile_LengthBounds(t *testing.T) {
	t.Parallel()

	checks := mustCompile(t, schema.ValidationSpec{MinLength: intPtr(2), MaxLength: intPtr(4)}, nil)
	cases := []struct {
		value any
		want  []Failure
	}{
		{value: "", want: nil},
		{value: nil, want: nil},
		{value: "a", want: []Failure{{Kind: KindMinLength, Message: "Value is too short"}}},
		{value: "ab", want: nil},
		{value: "abcd", want: nil},
		{value: "abcde", want: []Failure{{Kind: KindMaxLength, Message: "Value is too long"}}},
		{value: "äöü", want: nil},
		{value: []any{"x", "y", "z", "w", "v"}, want: []Failure{{Kind: KindMaxLength, Message: "Value is too long"}}},
		{value: 7, want: []Failure{{Kind: KindMinLength, Message: "Value is too short"}}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, RunAll(checks, tc.value, nil)); diff != "" {
			t.Fatalf("length checks for %#v mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestCompile_NumericBoundsCheckZero(t *testing.T) {
	t.Parallel()

	checks := mustCompile(t, schema.ValidationSpec{Min: floatPtr(1), Max: floatPtr(10)}, nil)
	cases := []struct {
		value any
		want  []Failure
	}{
		{value: "", want: nil},
		{value: nil, want: nil},
		{value: 0, want: []Failure{{Kind: KindMin, Message: "Value is too small"}}},
		{value: "0", want: []Failure{{Kind: KindMin, Message: "Value is too small"}}},
		{value: 1, want: nil},
		{value: "10", want: nil},
		{value: 10.5, want: []Failure{{Kind: KindMax, Message: "Value is too large"}}},
		{value: "ten", want: []Failure{
			{Kind: KindMin, Message: "Value is too small"},
			{Kind: KindMax, Message: "Value is too large"},
		}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, RunAll(checks, tc.value, nil)); diff != "" {
			t.Fatalf("bound checks for %#v mismatch (-want +got):\n%s", tc.value, diff)
		}
	}

	zeroMax := mustCompile(t, schema.ValidationSpec{Max: floatPtr(0)}, nil)
	if len(zeroMax) != 1 {
		t.Fatalf("max: 0 must compile to a check")
	}
	if got := zeroMax[0].Run(-1, nil); got != nil {
		t.Fatalf("-1 <= 0 should pass, got %+v", got)
	}
	if got := zeroMax[0].Run(0.5, nil); got == nil {
		t.Fatalf("0.5 > 0 should fail")
	}
}

func TestCompile_CustomMessagePassthrough(t *testing.T) {
	t.Parallel()

	minEight := func(value any, _ map[string]any) (bool, string) {
		text, _ := value.(string)
		if len(text) >= 8 {
			return true, ""
		}
		return false, "too short"
	}
	check := mustCompile(t, schema.ValidationSpec{Custom: minEight}, nil)[0]

	if diff := cmp.Diff(&Failure{Kind: KindCustom, Message: "too short"}, check.Run("abc", nil)); diff != "" {
		t.Fatalf("custom failure mismatch (-want +got):\n%s", diff)
	}
	if got := check.Run("12345678", nil); got != nil {
		t.Fatalf("custom check should pass, got %+v", got)
	}

	bare := mustCompile(t, schema.ValidationSpec{Custom: func(any, map[string]any) (bool, string) { return false, "" }}, nil)[0]
	if diff := cmp.Diff(&Failure{Kind: KindCustom, Message: "Invalid value"}, bare.Run("x", nil)); diff != "" {
		t.Fatalf("custom default message mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_CustomSeesAllValues(t *testing.T) {
	t.Parallel()

	matches := func(value any, values map[string]any) (bool, string) {
		if value == values["password"] {
			return true, ""
		}
		return false, "Passwords do not match"
	}
	check := mustCompile(t, schema.ValidationSpec{Custom: matches}, nil)[0]

	values := map[string]any{"password": "s3cret", "confirm": "s3cret"}
	if got := check.Run(values["confirm"], values); got != nil {
		t.Fatalf("expected pass, got %+v", got)
	}
	values["confirm"] = "other"
	if got := check.Run(values["confirm"], values); got == nil || got.Message != "Passwords do not match" {
		t.Fatalf("expected mismatch failure, got %+v", got)
	}
}

func TestCompile_RequiredOverride(t *testing.T) {
	t.Parallel()

	check := mustCompile(t, schema.ValidationSpec{Required: true}, map[string]string{"required": "Needed"})[0]
	if got := check.Run(nil, nil); got == nil || got.Message != "Needed" {
		t.Fatalf("expected overridden message, got %+v", got)
	}
}

func TestCompileField(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("even", func(value any, _ map[string]any) (bool, string) {
		n, _ := value.(int)
		return n%2 == 0, "Must be even"
	})

	t.Run("email type adds email check after required", func(t *testing.T) {
		t.Parallel()
		checks, err := CompileField(schema.FieldSpec{
			Name:       "email",
			Type:       schema.FieldTypeEmail,
			Required:   true,
			Validation: &schema.ValidationSpec{MaxLength: intPtr(64)},
		}, nil, registry)
		if err != nil {
			t.Fatalf("CompileField: %v", err)
		}
		if diff := cmp.Diff([]Kind{KindRequired, KindEmail, KindMaxLength}, kinds(checks)); diff != "" {
			t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
		}
		if got := RunAll(checks, "john@example.com", nil); got != nil {
			t.Fatalf("valid email rejected: %+v", got)
		}
		want := []Failure{{Kind: KindEmail, Message: "Please enter a valid email address"}}
		if diff := cmp.Diff(want, RunAll(checks, "john at example", nil)); diff != "" {
			t.Fatalf("email failure mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, RunAll(checks, "John <john@example.com>", nil)); diff != "" {
			t.Fatalf("display names are not plain addresses (-want +got):\n%s", diff)
		}
	})

	t.Run("requiredWhen implies a required check", func(t *testing.T) {
		t.Parallel()
		checks, err := CompileField(schema.FieldSpec{
			Name:         "company",
			Type:         schema.FieldTypeText,
			RequiredWhen: []schema.FieldCondition{{Field: "type", Operator: schema.OperatorEquals, Value: "business"}},
		}, nil, nil)
		if err != nil {
			t.Fatalf("CompileField: %v", err)
		}
		if diff := cmp.Diff([]Kind{KindRequired}, kinds(checks)); diff != "" {
			t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("custom reference resolves through registry", func(t *testing.T) {
		t.Parallel()
		checks, err := CompileField(schema.FieldSpec{
			Name:       "seats",
			Type:       schema.FieldTypeNumber,
			Validation: &schema.ValidationSpec{CustomRef: "even"},
		}, nil, registry)
		if err != nil {
			t.Fatalf("CompileField: %v", err)
		}
		if got := RunAll(checks, 3, nil); len(got) != 1 || got[0].Message != "Must be even" {
			t.Fatalf("expected custom failure, got %+v", got)
		}
	})

	t.Run("all problems are reported", func(t *testing.T) {
		t.Parallel()
		_, err := CompileField(schema.FieldSpec{
			Name:       "broken",
			Type:       schema.FieldTypeText,
			Validation: &schema.ValidationSpec{Pattern: "[", CustomRef: "missing"},
		}, nil, registry)
		var unknown *UnknownValidatorError
		var pattern *PatternError
		if !errors.As(err, &unknown) || unknown.Name != "missing" {
			t.Fatalf("expected UnknownValidatorError, got %v", err)
		}
		if !errors.As(err, &pattern) {
			t.Fatalf("expected PatternError, got %v", err)
		}
		if !strings.Contains(err.Error(), "missing") {
			t.Fatalf("error text should name the validator: %v", err)
		}
	})
}

func TestMessagesMerge(t *testing.T) {
	t.Parallel()

	defaults := DefaultMessages()
	merged := defaults.Merge(map[string]string{"required": "Needed", "min": "", "custom": "Nope"})

	if merged.For(KindRequired) != "Needed" || merged.For(KindCustom) != "Nope" {
		t.Fatalf("overrides not applied: %v", merged)
	}
	if merged.For(KindMin) != "Value is too small" {
		t.Fatalf("blank override must not erase default, got %q", merged.For(KindMin))
	}
	if defaults.For(KindRequired) != "This field is required" {
		t.Fatalf("Merge must not mutate the receiver")
	}
	if DefaultMessages().For(KindEmail) != "Please enter a valid email address" {
		t.Fatalf("email default missing")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("  b ", func(any, map[string]any) (bool, string) { return true, "" })
	reg.Register("a", func(any, map[string]any) (bool, string) { return true, "" })
	reg.Register("", func(any, map[string]any) (bool, string) { return true, "" })
	reg.Register("nil", nil)

	if diff := cmp.Diff([]string{"a", "b"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := reg.Lookup("b"); !ok {
		t.Fatalf("expected trimmed registration to resolve")
	}

	var nilReg *Registry
	if _, ok := nilReg.Lookup("a"); ok {
		t.Fatalf("nil registry must not resolve")
	}
	if nilReg.Names() != nil {
		t.Fatalf("nil registry must list no names")
	}
}

func TestZeroCheckPasses(t *testing.T) {
	t.Parallel()

	if (Check{}).Run("anything", nil) != nil {
		t.Fatalf("zero Check must pass")
	}
}
