// internal/app/features/errors/pages.go
package errors

import (
	"bytes"
	"net/http"

	"github.com/dalemusser/authpages/internal/app/features/defaultpage"
	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/domain/models"
)

// PageID is the page id of the error page.
const PageID = "error.ftl"

// Pages renders the localized HTML error page through the shell.
type Pages struct {
	page    *defaultpage.Page
	catalog *i18n.Catalog
}

// NewPages creates the error page renderer.
func NewPages(page *defaultpage.Page, catalog *i18n.Catalog) *Pages {
	return &Pages{page: page, catalog: catalog}
}

// Render writes the error page with status. msgKey names the message shown
// in the banner. kc, when known, supplies the realm and locale so the page
// matches the flow it interrupted.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, status int, msgKey string, kc *models.KcContext) error {
	errKC := models.KcContext{PageID: PageID}
	if kc != nil {
		errKC.Realm = kc.Realm
		errKC.Locale = kc.Locale
	}
	msg := p.catalog.For(&errKC, r.Header.Get("Accept-Language"))
	errKC.Message = &models.Message{Type: models.MessageError, Summary: msg.MsgStr(msgKey)}

	var buf bytes.Buffer
	if err := p.page.Render(&buf, &errKC, msg); err != nil {
		http.Error(w, msg.MsgStr(msgKey), status)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Language", msg.CurrentLanguage().LanguageTag)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
