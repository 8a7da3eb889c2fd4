package server

import (
	"fmt"
	"net/url"

	"github.com/goliatone/go-formview/pkg/formview"
	"github.com/goliatone/go-formview/pkg/runtime"
	"github.com/goliatone/go-formview/pkg/vdom"
)

// replay applies posted values to the mounted tree in document order. The
// tree is re-read after every event so a control mounted by an earlier
// change (the favorite drink field) receives its posted value, while values
// for controls that are not mounted are dropped.
func replay(host *runtime.Host, values url.Values) error {
	visited := make(map[string]bool)
	for {
		node := vdom.Find(host.Tree(), func(n *vdom.VNode) bool {
			name := n.Attr("name")
			return n.Tag == "input" && name != "" && !visited[name] && replayable(n)
		})
		if node == nil {
			return nil
		}
		name := node.Attr("name")
		visited[name] = true

		var err error
		switch node.Attr("type") {
		case "checkbox":
			err = host.Change(node, values.Has(name))
		default:
			if values.Has(name) {
				err = host.Input(node, values.Get(name))
			}
		}
		if err != nil {
			return fmt.Errorf("server: replay %q: %w", name, err)
		}
	}
}

func replayable(n *vdom.VNode) bool {
	switch n.Attr("type") {
	case "text", "checkbox", "":
		return true
	}
	return false
}

// toggleLabel captions the button that re-renders the form after the
// checkbox changes when scripting is unavailable.
const toggleLabel = "Update"

// decorate adapts the tree for browsers posting back to the server: the
// action buttons carry an _action value and the checkbox gains a toggle
// button that re-renders the form. An off-screen submit button leads the
// form so implicit submission (Enter in a text field) submits rather than
// toggles.
func decorate(tree *vdom.VNode, labels formview.Labels) {
	if form := vdom.ByID(tree, formview.FormID); form != nil {
		form.Children = append([]*vdom.VNode{defaultButton()}, form.Children...)
	}

	vdom.Walk(tree, func(n *vdom.VNode) bool {
		if n.Tag != "button" {
			return true
		}
		switch n.TextContent() {
		case labels.Submit:
			n.SetAttr("name", actionField)
			n.SetAttr("value", actionSubmit)
		case labels.Cancel:
			n.SetAttr("type", "submit")
			n.SetAttr("name", actionField)
			n.SetAttr("value", actionCancel)
			n.SetAttr("formnovalidate", true)
		}
		return true
	})

	checkbox := vdom.ByID(tree, formview.FieldIsOver21)
	if checkbox == nil {
		return
	}
	checkbox.SetAttr("data-autosubmit", actionToggle)
	if field := vdom.Closest(tree, checkbox, "div"); field != nil {
		field.Children = append(field.Children, vdom.Button(toggleLabel, map[string]any{
			"type":  "submit",
			"name":  actionField,
			"value": actionToggle,
			"class": "formview-toggle",
		}))
	}
}

// defaultButton is the form's first submit button. Browsers press it on
// implicit submission.
func defaultButton() *vdom.VNode {
	return vdom.Button("", map[string]any{
		"type":        "submit",
		"name":        actionField,
		"value":       actionSubmit,
		"class":       "formview-default",
		"tabindex":    "-1",
		"aria-hidden": "true",
		"style":       "position:absolute;left:-10000px;width:1px;height:1px;overflow:hidden",
	})
}
