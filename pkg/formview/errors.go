package formview

import "errors"

var (
	// ErrMissingCallback is returned by New when OnSubmit or OnCancel is nil.
	ErrMissingCallback = errors.New("formview: OnSubmit and OnCancel are required")
)
