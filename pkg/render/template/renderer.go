package template

import (
	"io"
)

// TemplateRenderer is the contract of the layout engine. It follows the
// go-template engine surface so another engine can back the fallback
// generator.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
