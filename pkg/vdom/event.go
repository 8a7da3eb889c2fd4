package vdom

// Event carries the data a host passes to a handler.
type Event struct {
	Type    string
	Target  *VNode
	Value   string
	Checked bool

	defaultPrevented bool
}

// PreventDefault marks the event so the host skips its default action (for a
// submit, a full document navigation).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}
