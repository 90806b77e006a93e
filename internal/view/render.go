package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer writes a Page as an HTML document.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.New("layout.html").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render executes the layout for p.
func (r *Renderer) Render(w io.Writer, p Page) error {
	if err := r.tpl.ExecuteTemplate(w, "layout.html", p); err != nil {
		return fmt.Errorf("view: render: %w", err)
	}
	return nil
}
