package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateCustomEmail is the generic layout used for invitations.
const TemplateCustomEmail = "custom-email"

// Content is the data passed to a template. Body is trusted HTML built by
// the caller; every other field is escaped.
type Content struct {
	UserName   string
	Title      string
	Body       template.HTML
	ActionURL  string
	ActionText string
}

// Renderer executes the embedded email templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("mail: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template called name (without the .html suffix).
func (r *Renderer) Render(name string, c Content) (string, error) {
	t := r.tmpl.Lookup(strings.TrimSuffix(name, ".html") + ".html")
	if t == nil {
		return "", fmt.Errorf("mail: unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("mail: render %s: %w", name, err)
	}
	return buf.String(), nil
}
