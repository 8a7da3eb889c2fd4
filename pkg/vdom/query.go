package vdom

import "strings"

// Walk visits root and its descendants in document order. Returning false from
// fn stops the walk.
func Walk(root *VNode, fn func(*VNode) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	for _, child := range root.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// Find returns the first node in document order matching pred.
func Find(root *VNode, pred func(*VNode) bool) *VNode {
	var found *VNode
	Walk(root, func(n *VNode) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node in document order matching pred.
func FindAll(root *VNode, pred func(*VNode) bool) []*VNode {
	var out []*VNode
	Walk(root, func(n *VNode) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByID returns the element whose id attribute equals id.
func ByID(root *VNode, id string) *VNode {
	if id == "" {
		return nil
	}
	return Find(root, func(n *VNode) bool {
		return !n.IsText() && n.Attr("id") == id
	})
}

// ByText returns the first element whose own text content, trimmed, equals
// text.
func ByText(root *VNode, text string) *VNode {
	want := strings.TrimSpace(text)
	return Find(root, func(n *VNode) bool {
		return !n.IsText() && strings.TrimSpace(n.TextContent()) == want && ownsText(n)
	})
}

// ByLabelText returns the control associated with the label whose text equals
// text, either through the label's for attribute or by nesting.
func ByLabelText(root *VNode, text string) *VNode {
	want := strings.TrimSpace(text)
	label := Find(root, func(n *VNode) bool {
		return n.Tag == "label" && strings.TrimSpace(n.TextContent()) == want
	})
	if label == nil {
		return nil
	}
	if id := label.Attr("for"); id != "" {
		return ByID(root, id)
	}
	return Find(label, IsControl)
}

// Controls returns every input, select, textarea and button in document order.
func Controls(root *VNode) []*VNode {
	return FindAll(root, IsControl)
}

// IsControl reports whether n is a form control element.
func IsControl(n *VNode) bool {
	switch n.Tag {
	case "input", "button", "select", "textarea":
		return true
	}
	return false
}

// Contains reports whether target is root or one of its descendants.
func Contains(root, target *VNode) bool {
	return Find(root, func(n *VNode) bool { return n == target }) != nil
}

// Closest returns the nearest ancestor of target (or target itself) whose tag
// equals tag.
func Closest(root, target *VNode, tag string) *VNode {
	path := ancestry(root, target)
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Tag == tag {
			return path[i]
		}
	}
	return nil
}

func ancestry(root, target *VNode) []*VNode {
	if root == nil {
		return nil
	}
	if root == target {
		return []*VNode{root}
	}
	for _, child := range root.Children {
		if path := ancestry(child, target); path != nil {
			return append([]*VNode{root}, path...)
		}
	}
	return nil
}

// ownsText filters out wrappers so ByText matches the innermost element, the
// way a reader points at the button rather than its enclosing form.
func ownsText(n *VNode) bool {
	if strings.TrimSpace(n.Content) != "" {
		return true
	}
	for _, child := range n.Children {
		if !child.IsText() {
			return false
		}
	}
	return len(n.Children) > 0
}
