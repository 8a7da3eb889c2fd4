package formview

import (
	"log/slog"

	"github.com/goliatone/go-formview/pkg/controls"
	"github.com/goliatone/go-formview/pkg/runtime"
	"github.com/goliatone/go-formview/pkg/serialize"
	"github.com/goliatone/go-formview/pkg/vdom"
	"github.com/goliatone/go-formview/pkg/visibility"
)

// Form identifiers and control names.
const (
	FormID             = "myForm"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldIsOver21      = "is_over_21"
	FieldFavoriteDrink = "favorite_drink"
	favoriteDrinkRule  = FieldIsOver21
)

// Props are the callbacks supplied by the hosting application. Both are
// required and are invoked synchronously from event handlers.
type Props struct {
	OnSubmit func(data serialize.Data)
	OnCancel func()
}

// Form is the drink preference form component.
type Form struct {
	runtime.ComponentBase

	props     Props
	labels    Labels
	evaluator visibility.Evaluator
	logger    *slog.Logger

	isOver21 bool

	firstName     *controls.TextControl
	lastName      *controls.TextControl
	over21        *controls.CheckboxControl
	favoriteDrink *controls.TextControl // nil while unmounted
	cancel        *controls.ButtonControl
	submit        *controls.ButtonControl
}

// Compile-time assertion to ensure Form implements runtime.Component.
var _ runtime.Component = (*Form)(nil)

// New constructs an unmounted form with the toggle off.
func New(props Props, options ...Option) (*Form, error) {
	if props.OnSubmit == nil || props.OnCancel == nil {
		return nil, ErrMissingCallback
	}

	f := &Form{
		props:     props,
		labels:    DefaultLabels(),
		evaluator: visibility.Truthy,
		logger:    slog.Default(),
		firstName: controls.NewText(FieldFirstName),
		lastName:  controls.NewText(FieldLastName),
		over21:    controls.NewCheckbox(FieldIsOver21),
		cancel:    controls.NewButton("", "button"),
		submit:    controls.NewButton("", "submit"),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f, nil
}

// IsOver21 reports the toggle state.
func (f *Form) IsOver21() bool {
	return f.isOver21
}

// Labels returns the labels in use.
func (f *Form) Labels() Labels {
	return f.labels
}

// Controls returns the controls attached to the form as of the last render,
// in document order. The favorite drink control is included only while it is
// mounted.
func (f *Form) Controls() []controls.Control {
	out := []controls.Control{f.firstName, f.lastName, f.over21}
	if f.favoriteDrink != nil {
		out = append(out, f.favoriteDrink)
	}
	return append(out, f.cancel, f.submit)
}

// Render builds the form tree for the current state.
func (f *Form) Render(_ runtime.Renderer) *vdom.VNode {
	f.syncFavoriteDrink()
	f.over21.SetChecked(f.isOver21)

	var favoriteDrink *vdom.VNode
	if f.favoriteDrink != nil {
		favoriteDrink = textField(FieldFavoriteDrink, f.labels.FavoriteDrink, f.favoriteDrink)
	}

	return vdom.Form(map[string]any{"id": FormID, "name": FormID},
		vdom.Heading(1, f.labels.Heading),
		textField(FieldFirstName, f.labels.FirstName, f.firstName),
		textField(FieldLastName, f.labels.LastName, f.lastName),
		vdom.Div(nil,
			vdom.Label(FieldIsOver21, f.labels.IsOver21),
			vdom.Checkbox(map[string]any{"id": FieldIsOver21, "name": FieldIsOver21}, f.isOver21).
				On(vdom.EventChange, f.handleIsOver21Change),
		),
		favoriteDrink,
		vdom.Button(f.labels.Cancel, map[string]any{"type": "button"}).
			On(vdom.EventClick, f.handleCancel),
		vdom.Button(f.labels.Submit, map[string]any{"type": "submit"}),
	).On(vdom.EventSubmit, f.handleFormSubmit)
}

func textField(name, label string, ctrl *controls.TextControl) *vdom.VNode {
	input := vdom.InputText(map[string]any{
		"id":    name,
		"name":  name,
		"value": ctrl.Value(),
	}).On(vdom.EventInput, func(ev *vdom.Event) {
		ctrl.SetValue(ev.Value)
	})
	return vdom.Div(nil, vdom.Label(name, label), input)
}

// syncFavoriteDrink mounts a fresh control when the rule passes and drops it
// otherwise, so text typed before an uncheck never reaches a later submit.
func (f *Form) syncFavoriteDrink() {
	visible, err := f.evaluator.Eval(FieldFavoriteDrink, favoriteDrinkRule, visibility.Context{
		Values: map[string]any{FieldIsOver21: f.isOver21},
	})
	if err != nil {
		f.logger.Error("formview: evaluate favorite drink visibility", "error", err)
		visible = false
	}

	switch {
	case visible && f.favoriteDrink == nil:
		f.favoriteDrink = controls.NewText(FieldFavoriteDrink)
	case !visible:
		f.favoriteDrink = nil
	}
}

func (f *Form) handleIsOver21Change(ev *vdom.Event) {
	f.isOver21 = ev.Checked
	f.logger.Debug("formview: toggle", FieldIsOver21, f.isOver21)
	f.StateHasChanged()
}

func (f *Form) handleCancel(_ *vdom.Event) {
	f.logger.Debug("formview: cancel")
	f.props.OnCancel()
}

func (f *Form) handleFormSubmit(ev *vdom.Event) {
	ev.PreventDefault()

	data := serialize.Controls(f.Controls())
	f.logger.Debug("formview: submit", "fields", len(data))
	f.props.OnSubmit(data)
}
