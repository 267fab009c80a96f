package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestLoadFile_RegistrationYAML(t *testing.T) {
	t.Parallel()

	form, err := LoadFile(filepath.Join("testdata", "registration.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if form.Title != "User Registration" {
		t.Fatalf("title not sanitised: %q", form.Title)
	}
	if diff := cmp.Diff(map[string]string{"required": "Please fill in this field"}, form.ValidationMessages); diff != "" {
		t.Fatalf("validation messages mismatch (-want +got):\n%s", diff)
	}

	wantNames := []string{"fullName", "email", "dob", "gender", "hobbies", "subscribe", "frequency", "about"}
	if diff := cmp.Diff(wantNames, form.Names()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	frequency, ok := form.Field("frequency")
	if !ok {
		t.Fatalf("frequency field missing")
	}
	wantConds := []FieldCondition{{Field: "subscribe", Operator: OperatorEquals, Value: true}}
	if diff := cmp.Diff(wantConds, frequency.VisibleWhen); diff != "" {
		t.Fatalf("visibleWhen mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantConds, frequency.RequiredWhen); diff != "" {
		t.Fatalf("requiredWhen mismatch (-want +got):\n%s", diff)
	}

	about, _ := form.Field("about")
	if about.Tooltip != "A few words" {
		t.Fatalf("tooltip not sanitised: %q", about.Tooltip)
	}
	if about.Validation == nil || about.Validation.MaxLength == nil || *about.Validation.MaxLength != 500 {
		t.Fatalf("expected maxLength 500, got %+v", about.Validation)
	}

	email, _ := form.Field("email")
	if email.Validation.Pattern != "^[a-zA-Z0-9+_.-]+@[a-zA-Z0-9.-]+$" {
		t.Fatalf("pattern mismatch: %q", email.Validation.Pattern)
	}
	if !email.BaseRequired() {
		t.Fatalf("email should be required")
	}
}

func TestLoadFS_AccountJSON(t *testing.T) {
	t.Parallel()

	form, err := LoadFS(os.DirFS("testdata"), "account.json")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}

	seats, ok := form.Field("seats")
	if !ok {
		t.Fatalf("seats field missing")
	}
	want := &ValidationSpec{
		Min:       floatPtr(0),
		Max:       floatPtr(500),
		CustomRef: "even",
	}
	if diff := cmp.Diff(want, seats.Validation); diff != "" {
		t.Fatalf("validation mismatch (-want +got):\n%s", diff)
	}

	company, _ := form.Field("company")
	if diff := cmp.Diff([]FieldCondition{{Field: "type", Operator: OperatorEquals, Value: "business"}}, company.VisibleWhen); diff != "" {
		t.Fatalf("visibleWhen mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DetectsFormatWithoutExtension(t *testing.T) {
	t.Parallel()

	yamlDoc := "title: Inline\nfields:\n  - name: a\n    label: A\n    type: text\n    validation:\n      minLength: 2\n"
	form, err := Parse([]byte(yamlDoc), "inline")
	if err != nil {
		t.Fatalf("Parse yaml: %v", err)
	}
	if form.Fields[0].Validation == nil || *form.Fields[0].Validation.MinLength != 2 {
		t.Fatalf("expected minLength 2, got %+v", form.Fields[0].Validation)
	}

	jsonDoc := `{"title":"Inline","fields":[{"name":"a","label":"A","type":"number","validation":{"minLength":0}}]}`
	form, err = Parse([]byte(jsonDoc), "inline")
	if err != nil {
		t.Fatalf("Parse json: %v", err)
	}
	if diff := cmp.Diff(intPtr(0), form.Fields[0].Validation.MinLength); diff != "" {
		t.Fatalf("zero minLength must survive decoding (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("   \n"), "empty.yaml"); err == nil || !strings.Contains(err.Error(), "empty.yaml") {
		t.Fatalf("expected empty document error naming the source, got %v", err)
	}
	if _, err := Parse([]byte("{not json"), "broken.json"); err == nil {
		t.Fatalf("expected JSON decode error")
	}
	if _, err := Parse([]byte("\t- : ["), "inline"); err == nil {
		t.Fatalf("expected error for undecodable input")
	}
	if _, err := Load(nil, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := Load(nil, SourceFromFS("account.json")); err == nil {
		t.Fatalf("expected error for fs source without file system")
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                                "",
		"  Plain  ":                       "Plain",
		"<b>Bold</b> label":               "Bold label",
		"<script>alert(1)</script>Safe":   "Safe",
		"Terms & Conditions":              "Terms & Conditions",
		`<a href="javascript:x">link</a>`: "link",
	}
	for input, want := range cases {
		if got := SanitizeText(input); got != want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFieldTypeAndOperatorEnums(t *testing.T) {
	t.Parallel()

	if !FieldTypeEmail.Valid() || FieldType("color").Valid() {
		t.Fatalf("unexpected FieldType.Valid results")
	}
	if !FieldTypeDropdown.IsChoice() || !FieldTypeMultiselect.IsChoice() || FieldTypeText.IsChoice() {
		t.Fatalf("unexpected FieldType.IsChoice results")
	}
	if !OperatorHasValue.Known() || Operator("startsWith").Known() {
		t.Fatalf("unexpected Operator.Known results")
	}
}

func TestFieldSpecConditions(t *testing.T) {
	t.Parallel()

	field := FieldSpec{
		VisibleWhen:  []FieldCondition{{Field: "a", Operator: OperatorHasValue}},
		RequiredWhen: []FieldCondition{{Field: "b", Operator: OperatorEquals, Value: "x"}},
	}
	got := field.Conditions()
	if len(got) != 2 || got[0].Field != "a" || got[1].Field != "b" {
		t.Fatalf("unexpected conditions: %+v", got)
	}
	if (FieldSpec{}).Conditions() != nil {
		t.Fatalf("expected nil conditions for bare field")
	}
}
