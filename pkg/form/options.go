package form

import (
	"log/slog"

	"github.com/goliatone/go-formengine/pkg/condition"
	"github.com/goliatone/go-formengine/pkg/validation"
)

// Option configures Bind.
type Option func(*Context)

// WithMessages overrides entries of the message table. They are applied on
// top of the schema's own ValidationMessages.
func WithMessages(messages map[string]string) Option {
	return func(c *Context) {
		if len(messages) == 0 {
			return
		}
		if c.messages == nil {
			c.messages = make(map[string]string, len(messages))
		}
		for key, value := range messages {
			c.messages[key] = value
		}
	}
}

// WithValues pre-seeds the value store. Seeded values take precedence over
// field defaults and are restored by Reset. Keys that do not name a field are
// ignored.
func WithValues(values map[string]any) Option {
	return func(c *Context) {
		c.seed = cloneValues(values)
	}
}

// WithEvaluator replaces the condition evaluator.
func WithEvaluator(evaluator condition.Evaluator) Option {
	return func(c *Context) {
		if evaluator != nil {
			c.evaluator = evaluator
		}
	}
}

// WithValidators supplies the registry used to resolve custom validator
// references declared by the schema.
func WithValidators(registry *validation.Registry) Option {
	return func(c *Context) {
		c.registry = registry
	}
}

// WithLogger routes diagnostics (condition fallbacks, blocked submissions)
// to logger. Contexts log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}
