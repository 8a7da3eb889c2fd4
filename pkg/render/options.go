package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the component tree.
type RenderOptions struct {
	// Title overrides the document title for renderers that emit a full page.
	Title string
	// Notice is a one-off message shown above the form, typically the flash
	// left by the previous submit or cancel.
	Notice string
	// HiddenFields are emitted as hidden inputs at the top of the form.
	HiddenFields map[string]string
	// Theme carries the resolved go-theme configuration. CSSVars are applied to
	// the page root; AssetURL resolves the "stylesheet" asset when present.
	Theme *theme.RendererConfig
}
