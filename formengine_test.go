package formengine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formengine/pkg/form"
)

func TestLoadSchemaAndBind(t *testing.T) {
	t.Parallel()

	s, err := LoadSchema("pkg/schema/testdata/registration.yaml")
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	fc, err := Bind(s, form.WithValues(map[string]any{
		"fullName": "Ada Lovelace",
		"email":    "ada@example.com",
		"gender":   "Female",
	}))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	values, err := fc.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := map[string]any{
		"fullName":  "Ada Lovelace",
		"email":     "ada@example.com",
		"gender":    "Female",
		"subscribe": false,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFromOpenAPI(t *testing.T) {
	t.Parallel()

	s, err := SchemaFromOpenAPI(context.Background(), "pkg/openapi/testdata/accounts.yaml", "createAccount")
	if err != nil {
		t.Fatalf("schema from openapi: %v", err)
	}
	if diff := cmp.Diff([]string{"type", "email", "company", "birthDate", "interests", "newsletter", "seats"}, s.Names()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	if _, err := SchemaFromOpenAPI(context.Background(), "pkg/openapi/testdata/missing.yaml", "createAccount"); err == nil {
		t.Fatalf("expected error for missing document")
	}
}

func TestBindRejectsInvalidSchema(t *testing.T) {
	t.Parallel()

	s, err := LoadSchema("pkg/schema/testdata/account.json")
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	if _, err := Bind(s); !errors.Is(err, form.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema for unregistered validator, got %v", err)
	}
}
