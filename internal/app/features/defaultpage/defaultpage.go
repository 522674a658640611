// Package defaultpage renders every page id without a dedicated page: the
// shell with a localized header and the message banner.
package defaultpage

import (
	"html/template"
	"io"

	"github.com/dalemusser/authpages/internal/app/features/layout"
	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/domain/models"
)

// titleKeys maps known page ids to their header message key.
var titleKeys = map[string]string{
	models.PageLogin:           "loginAccountTitle",
	"register.ftl":             "registerTitle",
	"login-reset-password.ftl": "emailForgotTitle",
	"login-config-totp.ftl":    "loginTotpTitle",
	"logout-confirm.ftl":       "logoutConfirmTitle",
	"error.ftl":                "errorTitle",
}

// TitleKey returns the header message key for pageID, or "" when the page
// id has none.
func TitleKey(pageID string) string {
	return titleKeys[pageID]
}

// Page is the fallback page.
type Page struct {
	shell *layout.Renderer
}

// New creates the fallback page on shell.
func New(shell *layout.Renderer) *Page {
	return &Page{shell: shell}
}

// Render writes the generic page for kc. Unknown page ids use the id itself
// as header.
func (p *Page) Render(w io.Writer, kc *models.KcContext, msg *i18n.Accessor) error {
	header := kc.PageID
	if key := TitleKey(kc.PageID); key != "" {
		header = msg.MsgStr(key)
	}

	props := layout.DefaultProps()
	props.HeaderNode = template.HTML(template.HTMLEscapeString(header))
	if kc.Realm.DisplayName == "" {
		props.DocumentTitle = header
	}
	return p.shell.Render(w, kc, msg, props)
}
