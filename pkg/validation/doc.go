// Package validation compiles a field's ValidationSpec into an ordered list
// of pure checks. Each check returns nil on success or a *Failure carrying
// its Kind and message. Checks are independent: the compiler never stops at
// the first failure, leaving it to callers to decide how many failures to
// show at once.
//
// Messages come from an explicit table, DefaultMessages merged with caller
// overrides, so compilation has no shared mutable state.
package validation
