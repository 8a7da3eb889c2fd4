// Package runtime mounts components, re-renders them when their state changes
// and dispatches DOM-like events against the rendered tree.
package runtime

import (
	"log/slog"

	"github.com/goliatone/go-formview/pkg/vdom"
)

// Component interface defines the structure for all components.
type Component interface {
	// Render generates the virtual DOM tree for this component.
	Render(r Renderer) *vdom.VNode

	// SetRenderer is called by the host to attach itself to the component so
	// StateHasChanged can trigger re-renders.
	SetRenderer(r Renderer)
}

// Renderer is the part of a host visible to components.
type Renderer interface {
	// ReRender requests that the renderer re-run the render cycle.
	ReRender()
}

// ComponentBase is a struct that components can embed to gain access to the
// StateHasChanged method, which triggers a re-render.
type ComponentBase struct {
	renderer Renderer
}

// SetRenderer is called by the host when the component is mounted. It should
// not be called by user code.
func (b *ComponentBase) SetRenderer(r Renderer) {
	b.renderer = r
}

// Mounted reports whether a host is attached.
func (b *ComponentBase) Mounted() bool {
	return b.renderer != nil
}

// StateHasChanged signals that the component's state has been updated and the
// tree should be rebuilt.
func (b *ComponentBase) StateHasChanged() {
	if b.renderer == nil {
		slog.Warn("runtime: StateHasChanged called on unmounted component")
		return
	}
	b.renderer.ReRender()
}
