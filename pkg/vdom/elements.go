package vdom

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Content: content}
}

// Element creates an element with the given attributes and children.
func Element(tag string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode(tag, attrs, children, "")
}

// Form creates a <form> VNode.
func Form(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("form", attrs, children, "")
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Heading creates an <h1>..<h6> VNode. Levels outside 1-6 fall back to h1.
func Heading(level int, text string) *VNode {
	tags := [...]string{"h1", "h2", "h3", "h4", "h5", "h6"}
	if level < 1 || level > len(tags) {
		level = 1
	}
	return NewVNode(tags[level-1], nil, nil, text)
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Label creates a <label for="..."> VNode.
func Label(forID, text string) *VNode {
	return NewVNode("label", map[string]any{"for": forID}, nil, text)
}

// Input returns an <input> VNode of the given type.
func Input(inputType string, attrs map[string]any) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["type"] = inputType
	return NewVNode("input", attrs, nil, "")
}

// InputText returns a VNode representing an <input type="text"> element.
func InputText(attrs map[string]any) *VNode {
	return Input("text", attrs)
}

// Checkbox returns a VNode representing an <input type="checkbox"> element.
func Checkbox(attrs map[string]any, checked bool) *VNode {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["checked"] = checked
	return Input("checkbox", attrs)
}

// Button creates a <button> VNode with the given children and allows passing attributes.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}
