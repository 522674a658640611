// internal/app/features/layout/vm.go
package layout

import (
	"html/template"

	"github.com/dalemusser/authpages/internal/app/system/htmlsanitize"
	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/app/system/ui"
	"github.com/dalemusser/authpages/internal/domain/models"
)

// Props are the per-page options of the shell. Start from DefaultProps so
// the message banner is on unless a page turns it off.
type Props struct {
	DocumentTitle         string
	DisplayInfo           bool
	DisplayMessage        bool
	DisplayRequiredFields bool
	BodyClassName         string

	HeaderNode          template.HTML
	SocialProvidersNode template.HTML
	InfoNode            template.HTML
	Content             template.HTML
}

// DefaultProps returns Props with DisplayMessage on and everything else off.
func DefaultProps() Props {
	return Props{DisplayMessage: true}
}

// Theme holds the deployment-wide look of the pages.
type Theme struct {
	Clsx         ui.Clsx
	LogoURL      string
	StaticPrefix string // where login.js and the stylesheet are served
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag      string
	Label    string
	Href     string
	Selected bool
}

// Banner is the page-level message alert.
type Banner struct {
	Type    models.MessageType
	Classes string
	Icon    template.HTML
	Summary template.HTML
}

// TryAnotherWay is the alternate-flow form.
type TryAnotherWay struct {
	Action string
	Label  string
}

// VM is everything the shell template reads. It is computed per render.
type VM struct {
	Lang          string
	HTMLClass     string
	BodyClass     string
	DocumentTitle string
	StaticPrefix  string
	LogoURL       string
	RealmName     string

	ShowAttemptedUsername bool
	AttemptedUsername     string
	RestartURL            string
	RestartLabel          string
	Header                template.HTML

	RequiredFields      bool
	RequiredFieldsLabel string
	Description         template.HTML

	ShowLanguages       bool
	Languages           []LanguageOption
	CurrentLanguage     string
	SelectLanguageLabel string

	Banner        *Banner
	TryAnotherWay *TryAnotherWay

	Content         template.HTML
	SocialProviders template.HTML
	DisplayInfo     bool
	Info            template.HTML
}

// ShowsBanner reports whether the message banner renders for kc.
// App-initiated actions suppress warnings since the app asked for the flow.
func ShowsBanner(kc *models.KcContext, displayMessage bool) bool {
	if !displayMessage || kc.Message == nil {
		return false
	}
	return kc.Message.Type != models.MessageWarning || !kc.IsAppInitiatedAction
}

// Build computes the shell view model for one render.
func Build(kc *models.KcContext, msg *i18n.Accessor, theme Theme, p Props) VM {
	vm := VM{
		Lang:          msg.CurrentLanguage().LanguageTag,
		HTMLClass:     theme.Clsx.Classes("kcHtmlClass"),
		BodyClass:     p.BodyClassName,
		DocumentTitle: p.DocumentTitle,
		StaticPrefix:  theme.StaticPrefix,
		LogoURL:       theme.LogoURL,
		RealmName:     kc.Realm.DisplayName,

		Header:              p.HeaderNode,
		RequiredFields:      p.DisplayRequiredFields,
		RequiredFieldsLabel: msg.MsgStr("requiredFields"),

		Content:         p.Content,
		SocialProviders: p.SocialProvidersNode,
		DisplayInfo:     p.DisplayInfo,
		Info:            p.InfoNode,
	}
	if vm.BodyClass == "" {
		vm.BodyClass = theme.Clsx.Classes("kcBodyClass")
	}
	if vm.DocumentTitle == "" {
		vm.DocumentTitle = msg.MsgStr("loginTitle", kc.Realm.DisplayName)
	}
	if vm.StaticPrefix == "" {
		vm.StaticPrefix = "/static"
	}

	nameHTML := kc.Realm.DisplayNameHTML
	if nameHTML == "" {
		nameHTML = template.HTMLEscapeString(kc.Realm.DisplayName)
	}
	vm.Description = msg.Msg("loginTitleHtml", nameHTML)

	if kc.ShowsAttemptedUsername() {
		vm.ShowAttemptedUsername = true
		vm.AttemptedUsername = kc.Auth.AttemptedUsername
		vm.RestartURL = kc.URL.LoginRestartFlowURL
		vm.RestartLabel = msg.MsgStr("restartLoginTooltip")
	}

	langs := msg.EnabledLanguages()
	if len(langs) > 1 {
		vm.ShowLanguages = true
		vm.SelectLanguageLabel = msg.MsgStr("selectLanguage")
		cur := msg.CurrentLanguage()
		vm.CurrentLanguage = cur.Label
		for _, l := range langs {
			vm.Languages = append(vm.Languages, LanguageOption{
				Tag:      l.LanguageTag,
				Label:    l.Label,
				Href:     l.Href,
				Selected: l.LanguageTag == cur.LanguageTag,
			})
		}
	}

	if ShowsBanner(kc, p.DisplayMessage) {
		t := kc.Message.Type
		vm.Banner = &Banner{
			Type:    t,
			Classes: ui.AlertClasses(ui.MessageAlertVariant(t), "kc-alert-"+string(t)),
			Icon:    ui.SVG(ui.MessageIcon(t)),
			Summary: htmlsanitize.SanitizeToHTML(kc.Message.Summary),
		}
	}

	if kc.ShowsTryAnotherWay() {
		vm.TryAnotherWay = &TryAnotherWay{
			Action: kc.URL.LoginAction,
			Label:  msg.MsgStr("doTryAnotherWay"),
		}
	}
	return vm
}
