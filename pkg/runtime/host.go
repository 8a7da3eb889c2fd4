package runtime

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formview/pkg/vdom"
)

// Compile-time assertion to ensure Host implements the Renderer interface.
var _ Renderer = (*Host)(nil)

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger overrides the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Host is an in-memory renderer. It keeps the most recent tree, rebuilds it on
// StateHasChanged and dispatches events synchronously, mirroring a browser's
// single event loop. A Host is not safe for concurrent use; mount one per
// goroutine.
type Host struct {
	component Component
	tree      *vdom.VNode
	logger    *slog.Logger

	renders        int
	defaultSubmits int
}

// NewHost creates an empty host.
func NewHost(options ...HostOption) *Host {
	h := &Host{logger: slog.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// Mount attaches comp and performs the initial render.
func (h *Host) Mount(comp Component) *vdom.VNode {
	h.component = comp
	comp.SetRenderer(h)
	h.tree = comp.Render(h)
	h.renders = 1
	return h.tree
}

// Unmount detaches the current component. Later StateHasChanged calls on it
// are ignored with a warning.
func (h *Host) Unmount() {
	if h.component != nil {
		h.component.SetRenderer(nil)
	}
	h.component = nil
	h.tree = nil
}

// ReRender rebuilds the tree from the mounted component.
func (h *Host) ReRender() {
	if h.component == nil {
		return
	}
	h.tree = h.component.Render(h)
	h.renders++
}

// Tree returns the most recently rendered tree.
func (h *Host) Tree() *vdom.VNode {
	return h.tree
}

// Renders reports how many times the mounted component has rendered.
func (h *Host) Renders() int {
	return h.renders
}

// DefaultSubmits reports how many submit events reached their default action
// because no handler called PreventDefault.
func (h *Host) DefaultSubmits() int {
	return h.defaultSubmits
}

// Dispatch delivers ev to node's handler. The node must belong to the current
// tree.
func (h *Host) Dispatch(node *vdom.VNode, ev *vdom.Event) error {
	if err := h.attached(node); err != nil {
		return err
	}
	h.fire(node, ev)
	return nil
}

// Click simulates a pointer click. Checkboxes flip their checked state and
// receive a change event; submit buttons submit their enclosing form unless
// the click handler prevented it.
func (h *Host) Click(node *vdom.VNode) error {
	if err := h.attached(node); err != nil {
		return err
	}

	tree := h.tree
	click := &vdom.Event{Type: vdom.EventClick}
	h.fire(node, click)

	switch {
	case node.Tag == "input" && node.Attr("type") == "checkbox":
		checked := !node.BoolAttr("checked")
		node.SetAttr("checked", checked)
		h.fire(node, &vdom.Event{Type: vdom.EventChange, Checked: checked})
	case isSubmitter(node) && !click.DefaultPrevented():
		form := vdom.Closest(tree, node, "form")
		if form == nil {
			return nil
		}
		submit := &vdom.Event{Type: vdom.EventSubmit}
		h.fire(form, submit)
		if !submit.DefaultPrevented() {
			h.defaultSubmits++
			h.logger.Debug("runtime: submit reached default action", "form", form.Attr("id"))
		}
	}
	return nil
}

// Change sets a checkbox to checked and fires change when the state differs.
func (h *Host) Change(node *vdom.VNode, checked bool) error {
	if err := h.attached(node); err != nil {
		return err
	}
	if node.BoolAttr("checked") == checked {
		return nil
	}
	node.SetAttr("checked", checked)
	h.fire(node, &vdom.Event{Type: vdom.EventChange, Checked: checked})
	return nil
}

// Input replaces a text control's value and fires an input event.
func (h *Host) Input(node *vdom.VNode, value string) error {
	if err := h.attached(node); err != nil {
		return err
	}
	node.SetAttr("value", value)
	h.fire(node, &vdom.Event{Type: vdom.EventInput, Value: value})
	return nil
}

// Type appends text to the control's current value, like a user typing at
// the end of the field.
func (h *Host) Type(node *vdom.VNode, text string) error {
	if node == nil {
		return ErrNilNode
	}
	return h.Input(node, node.Attr("value")+text)
}

// Submit submits the form enclosing node (or node itself when it is a form).
func (h *Host) Submit(node *vdom.VNode) error {
	if err := h.attached(node); err != nil {
		return err
	}
	form := node
	if form.Tag != "form" {
		form = vdom.Closest(h.tree, node, "form")
	}
	if form == nil {
		return fmt.Errorf("runtime: submit: no enclosing form for <%s>", node.Tag)
	}
	submit := &vdom.Event{Type: vdom.EventSubmit}
	h.fire(form, submit)
	if !submit.DefaultPrevented() {
		h.defaultSubmits++
	}
	return nil
}

func (h *Host) attached(node *vdom.VNode) error {
	if node == nil {
		return ErrNilNode
	}
	if h.tree == nil {
		return ErrNotMounted
	}
	if !vdom.Contains(h.tree, node) {
		return ErrDetached
	}
	return nil
}

func (h *Host) fire(node *vdom.VNode, ev *vdom.Event) {
	ev.Target = node
	handler := node.Handler(ev.Type)
	if handler == nil {
		return
	}
	h.logger.Debug("runtime: dispatch", "event", ev.Type, "tag", node.Tag, "id", node.Attr("id"))
	handler(ev)
}

// isSubmitter follows HTML defaults: a button without a type submits.
func isSubmitter(node *vdom.VNode) bool {
	switch node.Tag {
	case "button":
		t := node.Attr("type")
		return t == "" || t == "submit"
	case "input":
		return node.Attr("type") == "submit"
	}
	return false
}
