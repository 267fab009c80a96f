// Package schema defines the passive form description consumed by the form
// engine: fields with their types and options, per-field validation specs,
// and the visibleWhen/enabledWhen/requiredWhen condition lists. Schemas can be
// declared in Go or loaded from JSON and YAML documents through Load, LoadFile
// and Parse. Loading strips markup from display text but does not enforce
// schema invariants; unique names, valid patterns and choice options are
// checked when a schema is bound by pkg/form.
package schema
