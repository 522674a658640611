// internal/app/features/layout/layout.go
package layout

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/app/system/ui"
	"github.com/dalemusser/authpages/internal/domain/models"
)

//go:embed templates/*.gohtml
var FS embed.FS

// Renderer composes page fragments into the full document.
// It is parsed once and safe for concurrent use.
type Renderer struct {
	theme Theme
	tmpl  *template.Template
}

// New parses the shell templates for theme.
func New(theme Theme) (*Renderer, error) {
	tmpl, err := template.New("shell").Funcs(ui.FuncMap(theme.Clsx)).ParseFS(FS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse layout templates: %w", err)
	}
	return &Renderer{theme: theme, tmpl: tmpl}, nil
}

// Theme returns the theme the renderer was built with. Pages parse their own
// fragments with the same helpers.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render writes the document for kc with the page's props.
func (r *Renderer) Render(w io.Writer, kc *models.KcContext, msg *i18n.Accessor, p Props) error {
	vm := Build(kc, msg, r.theme, p)
	if err := r.tmpl.ExecuteTemplate(w, "layout", vm); err != nil {
		return fmt.Errorf("render layout: %w", err)
	}
	return nil
}
