// Package vdom provides the virtual DOM tree components render into. Trees are
// rebuilt on every render; hosts dispatch events against the current tree and
// serialize it to HTML when a document is needed.
package vdom

import "sort"

// Event names understood by hosts.
const (
	EventClick  = "click"
	EventChange = "change"
	EventInput  = "input"
	EventSubmit = "submit"
)

// Handler reacts to an event dispatched on a node.
type Handler func(*Event)

// VNode represents a virtual DOM node. A node with an empty Tag is a text node
// whose Content is its text.
type VNode struct {
	Tag        string             // The HTML tag name
	Attributes map[string]any     // The attributes of the node
	Children   []*VNode           // The child nodes
	Content    string             // The text content of the node
	Handlers   map[string]Handler // Event handlers keyed by event name
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	if attributes == nil {
		attributes = make(map[string]any)
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   compact(children),
		Content:    content,
	}
}

// On registers handler for event and returns the node for chaining.
func (v *VNode) On(event string, handler Handler) *VNode {
	if handler == nil {
		return v
	}
	if v.Handlers == nil {
		v.Handlers = make(map[string]Handler, 1)
	}
	v.Handlers[event] = handler
	return v
}

// Handler returns the handler registered for event, if any.
func (v *VNode) Handler(event string) Handler {
	if v == nil || v.Handlers == nil {
		return nil
	}
	return v.Handlers[event]
}

// Attr returns the string form of an attribute. Boolean attributes report
// "true" or "" so callers can test presence.
func (v *VNode) Attr(name string) string {
	if v == nil || v.Attributes == nil {
		return ""
	}
	switch val := v.Attributes[name].(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return ""
	case nil:
		return ""
	default:
		return stringify(val)
	}
}

// BoolAttr reports whether a boolean attribute such as checked is set.
func (v *VNode) BoolAttr(name string) bool {
	if v == nil || v.Attributes == nil {
		return false
	}
	b, _ := v.Attributes[name].(bool)
	return b
}

// SetAttr writes an attribute value.
func (v *VNode) SetAttr(name string, value any) {
	if v.Attributes == nil {
		v.Attributes = make(map[string]any)
	}
	v.Attributes[name] = value
}

// IsText reports whether the node is a text node.
func (v *VNode) IsText() bool {
	return v != nil && v.Tag == ""
}

// TextContent returns the concatenated text of the node and its descendants.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	out := v.Content
	for _, child := range v.Children {
		out += child.TextContent()
	}
	return out
}

func (v *VNode) sortedAttrNames() []string {
	names := make([]string, 0, len(v.Attributes))
	for name := range v.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func compact(children []*VNode) []*VNode {
	if len(children) == 0 {
		return nil
	}
	out := children[:0:0]
	for _, child := range children {
		if child != nil {
			out = append(out, child)
		}
	}
	return out
}
