package render

import (
	"context"

	"github.com/goliatone/go-formview/pkg/vdom"
)

// Renderer converts a rendered component tree into a byte representation
// (an HTML fragment, a full page, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, tree *vdom.VNode, options RenderOptions) ([]byte, error)
}
