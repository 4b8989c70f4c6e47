// Package web renders the dashboard page shell.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"domain_expiry/internal/model"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer handles template rendering
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"label": label,
	}).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{templates: tmpl}, nil
}

// PageData holds data for the index template
type PageData struct {
	ClientID    string
	Mode        string
	Theme       string
	DateFormat  string
	Themes      []string
	DateFormats []string
	LoadingText string
}

// RenderIndex writes the dashboard page
func (r *Renderer) RenderIndex(w io.Writer, data PageData) error {
	if data.Themes == nil {
		data.Themes = model.Themes
	}
	if data.DateFormats == nil {
		data.DateFormats = model.DateFormats
	}
	if err := r.templates.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return nil
}

func label(v string) string {
	switch v {
	case model.ThemeSystem:
		return "System"
	case model.ThemeLight:
		return "Light"
	case model.ThemeDark:
		return "Dark"
	case model.DateFormatAuto:
		return "Auto"
	}
	return v
}
