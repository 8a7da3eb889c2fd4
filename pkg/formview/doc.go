// Package formview implements the drink preference form: first and last name
// inputs, an "over 21" checkbox and a favorite drink input that only exists
// while the checkbox is checked.
//
// The form is a runtime.Component. Mount it on a runtime.Host (or drive it
// through one of the renderers) and it rebuilds its vdom tree whenever the
// checkbox changes:
//
//	form, err := formview.New(formview.Props{
//		OnSubmit: func(data serialize.Data) { save(data) },
//		OnCancel: func() { close() },
//	})
//	host := runtime.NewHost()
//	host.Mount(form)
//
// Submitting serializes the controls mounted at that moment, so the
// favorite_drink key is present only when is_over_21 was checked. Unchecking
// the box unmounts the favorite drink input; checking it again mounts a fresh,
// empty one.
package formview
