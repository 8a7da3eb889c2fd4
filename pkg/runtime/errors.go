package runtime

import "errors"

var (
	// ErrNotMounted is returned when events are dispatched before Mount.
	ErrNotMounted = errors.New("runtime: no component mounted")
	// ErrDetached is returned when the target node is not part of the current
	// tree, typically because a re-render replaced or removed it.
	ErrDetached = errors.New("runtime: node is not in the current tree")
	// ErrNilNode is returned when dispatching on a nil node.
	ErrNilNode = errors.New("runtime: node is nil")
)
