package testsupport

import (
	"testing"

	"github.com/goliatone/go-formview/pkg/runtime"
	"github.com/goliatone/go-formview/pkg/vdom"
)

// Screen mounts a component on an in-memory host and exposes queries and
// interactions in the style of DOM testing libraries. Get* helpers fail the
// test when nothing matches; Query* helpers return nil instead.
type Screen struct {
	t    testing.TB
	Host *runtime.Host
}

// Render mounts comp and returns a Screen over it.
func Render(t testing.TB, comp runtime.Component, options ...runtime.HostOption) *Screen {
	t.Helper()
	host := runtime.NewHost(options...)
	host.Mount(comp)
	return &Screen{t: t, Host: host}
}

// Tree returns the current tree.
func (s *Screen) Tree() *vdom.VNode {
	return s.Host.Tree()
}

// GetByLabelText returns the control labelled text.
func (s *Screen) GetByLabelText(text string) *vdom.VNode {
	s.t.Helper()
	node := s.QueryByLabelText(text)
	if node == nil {
		s.t.Fatalf("no control labelled %q", text)
	}
	return node
}

// QueryByLabelText returns the control labelled text, or nil.
func (s *Screen) QueryByLabelText(text string) *vdom.VNode {
	return vdom.ByLabelText(s.Host.Tree(), text)
}

// GetByText returns the element whose text equals text.
func (s *Screen) GetByText(text string) *vdom.VNode {
	s.t.Helper()
	node := s.QueryByText(text)
	if node == nil {
		s.t.Fatalf("no element with text %q", text)
	}
	return node
}

// QueryByText returns the element whose text equals text, or nil.
func (s *Screen) QueryByText(text string) *vdom.VNode {
	return vdom.ByText(s.Host.Tree(), text)
}

// Type appends text to the control.
func (s *Screen) Type(node *vdom.VNode, text string) {
	s.t.Helper()
	if err := s.Host.Type(node, text); err != nil {
		s.t.Fatalf("type %q: %v", text, err)
	}
}

// Click clicks the node.
func (s *Screen) Click(node *vdom.VNode) {
	s.t.Helper()
	if err := s.Host.Click(node); err != nil {
		s.t.Fatalf("click <%s>: %v", node.Tag, err)
	}
}

// HTML renders the current tree.
func (s *Screen) HTML() string {
	s.t.Helper()
	out, err := vdom.HTML(s.Host.Tree())
	if err != nil {
		s.t.Fatalf("render html: %v", err)
	}
	return out
}
