package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers rely on. Implementations
// return the rendered output and also copy it to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
