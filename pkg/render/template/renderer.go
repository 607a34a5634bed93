package template

import (
	"io"
)

// TemplateRenderer is the contract the result renderer depends on. Output is
// returned and also copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
