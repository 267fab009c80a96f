// Package form binds a schema.FormSchema to a mutable value store and derives
// the runtime state of every field from it.
//
// Bind validates the schema up front and reports every violation at once in a
// *SchemaError. The returned *Context owns the value store: each SetValue
// recomputes visibility, enablement, requiredness and check failures for all
// fields. Failures are always computed; FieldRuntimeState.VisibleErrors gates
// them on the touched flag for presentation. Submit returns the value object
// only when no visible and enabled field fails a check.
//
// A Context is not safe for concurrent use. It is driven by one caller that
// applies input events one at a time.
package form
