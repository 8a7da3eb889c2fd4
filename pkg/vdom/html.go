package vdom

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML writes the tree rooted at v as HTML. Boolean attributes are
// emitted only when true, attributes are sorted by name and handlers are
// dropped.
func RenderHTML(w io.Writer, v *VNode) error {
	if v == nil {
		return nil
	}
	node, err := toHTML(v)
	if err != nil {
		return err
	}
	return html.Render(w, node)
}

// HTML renders v into a string.
func HTML(v *VNode) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(v *VNode) (*html.Node, error) {
	if v.IsText() {
		return &html.Node{Type: html.TextNode, Data: v.Content}, nil
	}

	node := &html.Node{
		Type:     html.ElementNode,
		Data:     v.Tag,
		DataAtom: atom.Lookup([]byte(v.Tag)),
	}
	for _, name := range v.sortedAttrNames() {
		switch val := v.Attributes[name].(type) {
		case nil:
			continue
		case bool:
			if !val {
				continue
			}
			node.Attr = append(node.Attr, html.Attribute{Key: name, Val: name})
		default:
			node.Attr = append(node.Attr, html.Attribute{Key: name, Val: stringify(val)})
		}
	}

	void := isVoid(v.Tag)
	if void && (v.Content != "" || len(v.Children) > 0) {
		return nil, fmt.Errorf("vdom: void element <%s> has content", v.Tag)
	}
	if v.Content != "" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: v.Content})
	}
	for _, child := range v.Children {
		c, err := toHTML(child)
		if err != nil {
			return nil, err
		}
		node.AppendChild(c)
	}
	return node, nil
}

func isVoid(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "source", "track", "wbr":
		return true
	}
	return false
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
