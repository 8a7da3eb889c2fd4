package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formview/pkg/render"
	rendertemplate "github.com/goliatone/go-formview/pkg/render/template"
	"github.com/goliatone/go-formview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formview/pkg/vdom"
)

// StylesheetAsset is the theme asset key resolved through
// theme.RendererConfig.AssetURL for an external stylesheet.
const StylesheetAsset = "stylesheet"

const defaultLang = "en"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStylesheet bool
	lang             string
}

// WithTemplatesFS supplies an alternate layout bundle. It must contain
// templates/page.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads the layout bundle from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
// WithLang and WithInlineStylesheet configure the built-in engine's globals
// and do not reach a custom renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithInlineStylesheet toggles embedding the default stylesheet in the page.
// It is on by default.
func WithInlineStylesheet(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStylesheet = enabled
	}
}

// WithLang sets the document language attribute.
func WithLang(lang string) Option {
	return func(cfg *config) {
		cfg.lang = strings.TrimSpace(lang)
	}
}

// Page renders a complete HTML document around the form fragment.
type Page struct {
	templates rendertemplate.TemplateRenderer
	fragment  Fragment
}

var _ render.Renderer = (*Page)(nil)

// NewPage constructs the page renderer applying any provided options.
func NewPage(options ...Option) (*Page, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStylesheet: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		lang := cfg.lang
		if lang == "" {
			lang = defaultLang
		}
		stylesheet := ""
		if cfg.inlineStylesheet {
			stylesheet = defaultStylesheet()
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithGlobals(map[string]any{
				"lang":       lang,
				"stylesheet": stylesheet,
			}),
			gotemplate.WithFilter("cssvars", filterCSSVars),
		)
		if err != nil {
			return nil, fmt.Errorf("html page: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Page{templates: renderer, fragment: NewFragment()}, nil
}

func (p *Page) Name() string {
	return "page"
}

func (p *Page) ContentType() string {
	return contentType
}

// Render builds the fragment and executes templates/page.tpl around it.
func (p *Page) Render(ctx context.Context, tree *vdom.VNode, options render.RenderOptions) ([]byte, error) {
	if p.templates == nil {
		return nil, fmt.Errorf("html page: template renderer is nil")
	}

	form, err := p.fragment.Render(ctx, tree, options)
	if err != nil {
		return nil, fmt.Errorf("html page: %w", err)
	}

	data := map[string]any{
		"title":          pageTitle(tree, options.Title),
		"notice":         strings.TrimSpace(options.Notice),
		"form":           string(form),
		"stylesheet_url": stylesheetURL(options.Theme),
		"theme":          themeContext(options.Theme),
	}

	result, err := p.templates.RenderTemplate("templates/page", data)
	if err != nil {
		return nil, fmt.Errorf("html page: render template: %w", err)
	}
	return []byte(result), nil
}

// pageTitle prefers an explicit title and falls back to the first heading.
func pageTitle(tree *vdom.VNode, title string) string {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		return trimmed
	}
	heading := vdom.Find(tree, func(n *vdom.VNode) bool {
		return n.Tag == "h1"
	})
	if heading == nil {
		return ""
	}
	return strings.TrimSpace(heading.TextContent())
}

func stylesheetURL(cfg *theme.RendererConfig) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(StylesheetAsset)
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":     cfg.Theme,
		"variant":  cfg.Variant,
		"css_vars": cfg.CSSVars,
	}
}

// filterCSSVars backs the cssvars template filter.
func filterCSSVars(input any, _ any) (any, error) {
	switch vars := input.(type) {
	case nil:
		return "", nil
	case map[string]string:
		return cssVarsStyle(vars), nil
	case map[string]any:
		converted := make(map[string]string, len(vars))
		for key, value := range vars {
			converted[key] = fmt.Sprint(value)
		}
		return cssVarsStyle(converted), nil
	}
	return nil, fmt.Errorf("cssvars: unsupported value %T", input)
}

// cssVarsStyle renders custom properties as a sorted inline style. Keys
// without the leading "--" are prefixed.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.TrimSpace(key) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		fmt.Fprintf(&b, "%s: %s;", name, strings.TrimSpace(vars[key]))
	}
	return b.String()
}
