// internal/app/features/login/page.go
package login

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/dalemusser/authpages/internal/app/features/layout"
	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/app/system/ui"
	"github.com/dalemusser/authpages/internal/domain/models"
)

//go:embed templates/*.gohtml
var FS embed.FS

// Page renders login.ftl.
type Page struct {
	shell *layout.Renderer
	tmpl  *template.Template
}

// Load parses the login templates. It is the page's lazy loader.
func Load(shell *layout.Renderer) (*Page, error) {
	tmpl, err := template.New("login").
		Funcs(ui.FuncMap(shell.Theme().Clsx)).
		ParseFS(FS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse login templates: %w", err)
	}
	return &Page{shell: shell, tmpl: tmpl}, nil
}

// Render writes the login page for kc.
func (p *Page) Render(w io.Writer, kc *models.KcContext, msg *i18n.Accessor) error {
	vm := BuildVM(kc, msg)

	content, err := p.fragment("content", vm)
	if err != nil {
		return err
	}
	social, err := p.fragment("socialProviders", vm)
	if err != nil {
		return err
	}
	info, err := p.fragment("info", vm)
	if err != nil {
		return err
	}

	props := layout.DefaultProps()
	props.DisplayMessage = vm.DisplayMessage
	props.DisplayInfo = vm.DisplayInfo
	props.HeaderNode = vm.Header
	props.Content = content
	props.SocialProvidersNode = social
	props.InfoNode = info
	return p.shell.Render(w, kc, msg, props)
}

// fragment executes one named template. The output was produced by
// html/template, so it is already escaped.
func (p *Page) fragment(name string, vm VM) (template.HTML, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, vm); err != nil {
		return "", fmt.Errorf("render login %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
