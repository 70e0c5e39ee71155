// Package views renders the storefront's HTML pages.
package views

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

// CoverFallbackPath is the bundled placeholder shown when a record has no
// cover image.
const CoverFallbackPath = "/assets/img/cover-fallback.svg"

// Component is one renderable page. Rendering goes through a buffer so a
// template error never leaves a half-written response behind.
type Component struct {
	name string
	data any
}

func (c Component) Render(ctx context.Context, w io.Writer) error {
	_ = ctx
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, c.name, c.data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
