// Package condition evaluates the visibleWhen, enabledWhen and requiredWhen
// predicates of a schema against a snapshot of form values.
//
// Evaluation is total: unknown operators and references to fields that are
// not in the snapshot never fail. An unknown operator is treated as
// satisfied, and a missing field reads as an absent value, so a malformed
// schema leaves fields visible rather than hiding them.
package condition
