package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formview/pkg/render/template"
)

const extension = ".tpl"

// Filter transforms a template value. param is nil when the template passes
// no argument.
type Filter func(input any, param any) (any, error)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	globals   pongo2.Context
	filters   map[string]Filter
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithGlobals seeds values visible to every template. Render data with the
// same key wins.
func WithGlobals(values map[string]any) Option {
	return func(cfg *config) {
		for key, value := range values {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if cfg.globals == nil {
				cfg.globals = pongo2.Context{}
			}
			cfg.globals[key] = value
		}
	}
}

// WithFilter registers fn under name. pongo2 filters are process-wide, so the
// first registration of a name is kept.
func WithFilter(name string, fn Filter) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = map[string]Filter{}
		}
		cfg.filters[name] = fn
	}
}

// Engine executes pongo2 templates loaded from an fs.FS. It is safe for
// concurrent use once constructed.
type Engine struct {
	set *pongo2.TemplateSet
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.templates == nil {
		return nil, errors.New("gotemplate: templates fs is required")
	}

	for name, fn := range cfg.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, adaptFilter(fn)); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}

	set := pongo2.NewSet("formview", pongo2.NewFSLoader(cfg.templates))
	if set.Globals == nil {
		set.Globals = pongo2.Context{}
	}
	set.Globals.Update(cfg.globals)
	return &Engine{set: set}, nil
}

// RenderTemplate executes the template at name, appending ".tpl" when the
// name has no extension. Parsed templates are cached by the set.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, extension) {
		path += extension
	}

	tmpl, err := e.set.FromCache(path)
	if err != nil {
		return "", fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	ctx, err := contextFrom(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}
	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// contextFrom passes maps through and flattens anything else through its JSON
// form, so struct tags name the template keys.
func contextFrom(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("data must encode as a JSON object: %w", err)
	}
	return ctx, nil
}

func adaptFilter(fn Filter) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil && !param.IsNil() {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
}
