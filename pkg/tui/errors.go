package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnsettled is returned when answers keep invalidating each other and
	// the form never becomes submittable.
	ErrUnsettled = errors.New("tui: form did not settle")
)
