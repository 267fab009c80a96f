// Package formengine is the single-import entry point: load a schema (from a
// schema document or an OpenAPI operation), bind it, and fill it.
package formengine

import (
	"context"

	"github.com/goliatone/go-formengine/pkg/form"
	"github.com/goliatone/go-formengine/pkg/openapi"
	"github.com/goliatone/go-formengine/pkg/schema"
	"github.com/goliatone/go-formengine/pkg/tui"
)

// LoadSchema reads a JSON or YAML schema document from path.
func LoadSchema(path string) (schema.FormSchema, error) {
	return schema.LoadFile(path)
}

// SchemaFromOpenAPI derives a schema from the request body of operationID in
// the OpenAPI document at path.
func SchemaFromOpenAPI(ctx context.Context, path, operationID string, options ...openapi.Option) (schema.FormSchema, error) {
	doc, err := openapi.LoadFile(ctx, path)
	if err != nil {
		return schema.FormSchema{}, err
	}
	return openapi.FormSchema(ctx, doc, operationID, options...)
}

// Bind validates s and returns a form context for it.
func Bind(s schema.FormSchema, options ...form.Option) (*form.Context, error) {
	return form.Bind(s, options...)
}

// Fill prompts for fc on the terminal and returns the serialized submission.
func Fill(ctx context.Context, fc *form.Context, options ...tui.Option) ([]byte, error) {
	return tui.New(options...).Fill(ctx, fc)
}
