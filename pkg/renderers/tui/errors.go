package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoActions is returned when the rendered tree offers no button to end
	// the session with.
	ErrNoActions = errors.New("tui: no actions rendered")
)
