// Package html renders component trees as HTML: a bare form fragment, or a
// complete page built from an embedded pongo2 layout.
package html

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/vdom"
)

const contentType = "text/html; charset=utf-8"

// Fragment renders only the form markup.
type Fragment struct{}

var _ render.Renderer = Fragment{}

// NewFragment returns the fragment renderer.
func NewFragment() Fragment {
	return Fragment{}
}

func (Fragment) Name() string {
	return "fragment"
}

func (Fragment) ContentType() string {
	return contentType
}

// Render serializes tree, prepending options.HiddenFields to the first form.
func (Fragment) Render(_ context.Context, tree *vdom.VNode, options render.RenderOptions) ([]byte, error) {
	if tree == nil {
		return nil, fmt.Errorf("html fragment: tree is nil")
	}

	var buf bytes.Buffer
	if err := vdom.RenderHTML(&buf, withHiddenFields(tree, options.HiddenFields)); err != nil {
		return nil, fmt.Errorf("html fragment: %w", err)
	}
	return buf.Bytes(), nil
}

// withHiddenFields returns a copy of the path from node to its first form with
// hidden inputs prepended to that form. Untouched subtrees are shared.
func withHiddenFields(node *vdom.VNode, fields map[string]string) *vdom.VNode {
	hidden := render.SortedHiddenFields(fields)
	if len(hidden) == 0 {
		return node
	}
	inputs := make([]*vdom.VNode, 0, len(hidden))
	for _, field := range hidden {
		inputs = append(inputs, vdom.Input("hidden", map[string]any{
			"name":  field.Name,
			"value": field.Value,
		}))
	}
	if out, ok := injectIntoForm(node, inputs); ok {
		return out
	}
	return node
}

func injectIntoForm(node *vdom.VNode, inputs []*vdom.VNode) (*vdom.VNode, bool) {
	if node == nil || node.IsText() {
		return node, false
	}
	if node.Tag == "form" {
		clone := *node
		clone.Children = append(append([]*vdom.VNode{}, inputs...), node.Children...)
		return &clone, true
	}
	for i, child := range node.Children {
		replaced, ok := injectIntoForm(child, inputs)
		if !ok {
			continue
		}
		clone := *node
		clone.Children = append([]*vdom.VNode{}, node.Children...)
		clone.Children[i] = replaced
		return &clone, true
	}
	return node, false
}
