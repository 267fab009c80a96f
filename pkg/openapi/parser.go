package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation is the subset of an OpenAPI operation needed to build a form.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Request     *openapi3.SchemaRef
}

type parseOptions struct {
	validate     bool
	externalRefs bool
}

// Option configures document parsing.
type Option func(*parseOptions)

// WithValidation toggles kin-openapi document validation before extraction.
// Enabled by default.
func WithValidation(enabled bool) Option {
	return func(o *parseOptions) {
		o.validate = enabled
	}
}

// WithExternalRefs allows $ref pointers to other files or URLs.
func WithExternalRefs(enabled bool) Option {
	return func(o *parseOptions) {
		o.externalRefs = enabled
	}
}

func newParseOptions(options []Option) parseOptions {
	cfg := parseOptions{validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// requestMediaTypes lists the request body encodings searched, in order.
var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Operations parses doc and returns its operations keyed by operationId.
// Operations without an id are keyed "method:path" with a lowercase method.
func Operations(ctx context.Context, doc Document, options ...Option) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	cfg := newParseOptions(options)

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = cfg.externalRefs

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", doc.Location(), err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate %s: %w", doc.Location(), err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("openapi: %s declares no paths", doc.Location())
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			id := operation.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			operations[id] = Operation{
				ID:          id,
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     operation.Summary,
				Description: operation.Description,
				Request:     requestSchema(operation.RequestBody),
			}
		}
	}
	if len(operations) == 0 {
		return nil, fmt.Errorf("openapi: %s declares no operations", doc.Location())
	}
	return operations, nil
}

// OperationIDs lists the keys of operations in sorted order.
func OperationIDs(operations map[string]Operation) []string {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}

	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}
