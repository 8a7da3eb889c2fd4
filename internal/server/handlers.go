package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/goliatone/go-formview/pkg/formview"
	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/runtime"
	"github.com/goliatone/go-formview/pkg/serialize"
	"github.com/goliatone/go-formview/pkg/validation"
	"github.com/goliatone/go-formview/pkg/vdom"
)

// Form post field and action names.
const (
	actionField  = "_action"
	actionToggle = "toggle"
	actionSubmit = "submit"
	actionCancel = "cancel"

	flashKey        = "flash"
	cancelledNotice = "cancelled"
)

var errUnknownAction = errors.New("server: unknown action")

// mounted is a per-request form instance and what its callbacks received.
type mounted struct {
	form      *formview.Form
	host      *runtime.Host
	submitted serialize.Data
	cancelled bool
}

func (s *Server) mount() (*mounted, error) {
	m := &mounted{}
	form, err := formview.New(formview.Props{
		OnSubmit: func(data serialize.Data) { m.submitted = data },
		OnCancel: func() { m.cancelled = true },
	}, formview.WithLabels(s.labels), formview.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	m.form = form
	m.host = runtime.NewHost(runtime.WithLogger(s.logger))
	m.host.Mount(form)
	return m, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(formview.SubmissionSchema()); err != nil {
		s.logger.Error("encode submission schema", "error", err)
	}
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	m, err := s.mount()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	notice := s.sessions.PopString(r.Context(), flashKey)
	s.renderForm(w, r, m, notice)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	m, err := s.mount()
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := replay(m.host, r.PostForm); err != nil {
		s.serverError(w, r, err)
		return
	}

	action := postedAction(r.PostForm)
	switch action {
	case actionToggle:
		s.renderForm(w, r, m, "")
		return
	case actionSubmit, actionCancel:
	default:
		s.logger.Warn("rejecting form post", "action", action, "error", errUnknownAction)
		http.Error(w, "Bad Request - unknown action", http.StatusBadRequest)
		return
	}

	if err := s.clickAction(m, action); err != nil {
		s.serverError(w, r, err)
		return
	}

	switch {
	case m.cancelled:
		s.sessions.Put(r.Context(), flashKey, cancelledNotice)
	case m.submitted != nil:
		if result := validation.ValidateSubmission(m.submitted); !result.Valid {
			s.logger.Warn("submission does not match schema", "issues", result.Issues)
		}
		payload, err := serialize.Encode(m.submitted, serialize.FormatJSON)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		sub := formview.Decode(m.submitted)
		s.logger.Info("form submitted",
			"fields", len(m.submitted),
			"over_21", sub.IsOver21,
			"favorite_drink_answered", sub.FavoriteDrink != nil,
		)
		s.sessions.Put(r.Context(), flashKey, string(payload))
	}
	http.Redirect(w, r, "/form", http.StatusSeeOther)
}

// clickAction presses the button matching action, located by the label the
// mounted form rendered it with.
func (s *Server) clickAction(m *mounted, action string) error {
	labels := m.form.Labels()
	label := labels.Submit
	if action == actionCancel {
		label = labels.Cancel
	}
	button := vdom.Find(m.host.Tree(), func(n *vdom.VNode) bool {
		return n.Tag == "button" && n.TextContent() == label
	})
	if button == nil {
		return errors.New("server: " + action + " button not rendered")
	}
	return m.host.Click(button)
}

// postedAction returns the last _action value so a pressed button overrides
// the hidden default placed before it.
func postedAction(values url.Values) string {
	actions := values[actionField]
	if len(actions) == 0 {
		return actionSubmit
	}
	return actions[len(actions)-1]
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, m *mounted, notice string) {
	name := "page"
	if r.URL.Query().Get("render") == "fragment" {
		name = "fragment"
	}
	renderer, err := s.registry.Get(name)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	tree := m.host.Tree()
	decorate(tree, m.form.Labels())

	out, err := renderer.Render(r.Context(), tree, render.RenderOptions{
		Notice:       notice,
		Theme:        s.theme,
		HiddenFields: render.MergeHiddenFields(nil, render.ActionField(actionField, actionSubmit)),
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	_, _ = w.Write(out)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
