package openapi

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formengine/pkg/schema"
)

// ExtensionKey is the vendor extension read from request body schemas and
// their properties.
const ExtensionKey = "x-formengine"

// fieldExtension is the x-formengine payload of one property.
type fieldExtension struct {
	Label        string                  `json:"label"`
	Placeholder  string                  `json:"placeholder"`
	Tooltip      string                  `json:"tooltip"`
	Message      string                  `json:"message"`
	Widget       string                  `json:"widget"`
	ClassName    string                  `json:"className"`
	Custom       string                  `json:"custom"`
	Order        *int                    `json:"order"`
	Hidden       bool                    `json:"hidden"`
	Disabled     bool                    `json:"disabled"`
	Readonly     bool                    `json:"readonly"`
	VisibleWhen  []schema.FieldCondition `json:"visibleWhen"`
	EnabledWhen  []schema.FieldCondition `json:"enabledWhen"`
	RequiredWhen []schema.FieldCondition `json:"requiredWhen"`
}

// formExtension is the x-formengine payload of the request body schema.
type formExtension struct {
	Title              string            `json:"title"`
	ClassName          string            `json:"className"`
	ValidationMessages map[string]string `json:"validationMessages"`
}

// decodeExtension re-encodes the raw extension value and decodes it into
// target. A missing extension leaves target untouched.
func decodeExtension(extensions map[string]any, target any) error {
	value, ok := extensions[ExtensionKey]
	if !ok || value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("openapi: encode %s: %w", ExtensionKey, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("openapi: decode %s: %w", ExtensionKey, err)
	}
	return nil
}
