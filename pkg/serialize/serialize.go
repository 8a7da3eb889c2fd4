// Package serialize converts the controls mounted in a form into the flat
// name/value mapping handed to submit callbacks.
package serialize

import "github.com/goliatone/go-formview/pkg/controls"

// Data is the submitted mapping: strings for text controls, booleans for
// checkboxes.
type Data map[string]any

// Controls walks ctrls in document order and collects a value for every named
// control. Unnamed controls are skipped and a later control overwrites an
// earlier one with the same name. It never fails: an empty form yields an
// empty, non-nil map.
func Controls(ctrls []controls.Control) Data {
	data := make(Data, len(ctrls))
	for _, ctrl := range ctrls {
		if ctrl == nil {
			continue
		}
		name := ctrl.Name()
		if name == "" {
			continue
		}
		switch c := ctrl.(type) {
		case *controls.CheckboxControl:
			data[name] = c.Value()
		case *controls.TextControl:
			data[name] = c.Value()
		case *controls.ButtonControl:
			data[name] = c.Value()
		}
	}
	return data
}

// Has reports whether name is present, regardless of its value.
func (d Data) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// String returns the text value stored under name.
func (d Data) String(name string) (string, bool) {
	v, ok := d[name].(string)
	return v, ok
}

// Bool returns the checkbox value stored under name.
func (d Data) Bool(name string) (bool, bool) {
	v, ok := d[name].(bool)
	return v, ok
}
