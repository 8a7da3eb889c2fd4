// Package controls models the named inputs that participate in a form. A
// Control is a closed variant over the concrete kinds the form renders, so
// serialization can switch on the kind instead of probing arbitrary objects
// for type/checked/value properties.
package controls

import "strings"

// Kind identifies the concrete control variant.
type Kind string

const (
	KindText     Kind = "text"
	KindCheckbox Kind = "checkbox"
	KindButton   Kind = "button"
)

// Control is implemented by TextControl, CheckboxControl and ButtonControl
// only.
type Control interface {
	Name() string
	Kind() Kind
	sealed()
}

// TextControl holds the current text of an <input type="text">.
type TextControl struct {
	name  string
	value string
}

// NewText returns an empty text control.
func NewText(name string) *TextControl {
	return &TextControl{name: strings.TrimSpace(name)}
}

func (c *TextControl) Name() string { return c.name }
func (c *TextControl) Kind() Kind   { return KindText }
func (c *TextControl) sealed()      {}

// Value returns the current text.
func (c *TextControl) Value() string {
	if c == nil {
		return ""
	}
	return c.value
}

// SetValue replaces the current text.
func (c *TextControl) SetValue(value string) {
	c.value = value
}

// CheckboxControl holds the checked state of an <input type="checkbox">.
type CheckboxControl struct {
	name    string
	checked bool
}

// NewCheckbox returns an unchecked checkbox control.
func NewCheckbox(name string) *CheckboxControl {
	return &CheckboxControl{name: strings.TrimSpace(name)}
}

func (c *CheckboxControl) Name() string { return c.name }
func (c *CheckboxControl) Kind() Kind   { return KindCheckbox }
func (c *CheckboxControl) sealed()      {}

// Value reports whether the box is checked.
func (c *CheckboxControl) Value() bool {
	if c == nil {
		return false
	}
	return c.checked
}

// SetChecked updates the checked state.
func (c *CheckboxControl) SetChecked(checked bool) {
	c.checked = checked
}

// ButtonControl is a <button>. Buttons are part of a form's control list but
// usually carry no name, in which case they contribute nothing on submit.
type ButtonControl struct {
	name  string
	value string
	Type  string
}

// NewButton returns a button control. Pass an empty name for action buttons
// that should not appear in submitted data.
func NewButton(name, buttonType string) *ButtonControl {
	return &ButtonControl{name: strings.TrimSpace(name), Type: buttonType}
}

func (c *ButtonControl) Name() string { return c.name }
func (c *ButtonControl) Kind() Kind   { return KindButton }
func (c *ButtonControl) sealed()      {}

// Value returns the button's value attribute.
func (c *ButtonControl) Value() string {
	if c == nil {
		return ""
	}
	return c.value
}

// WithValue sets the value attribute and returns the control.
func (c *ButtonControl) WithValue(value string) *ButtonControl {
	c.value = value
	return c
}
