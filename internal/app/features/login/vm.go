// internal/app/features/login/vm.go
package login

import (
	"html/template"

	"github.com/dalemusser/authpages/internal/app/system/htmlsanitize"
	"github.com/dalemusser/authpages/internal/app/system/i18n"
	"github.com/dalemusser/authpages/internal/app/system/ui"
	"github.com/dalemusser/authpages/internal/domain/models"
)

// Options row alignment.
const (
	JustifyBetween = "justify-between"
	JustifyCenter  = "justify-center"
	JustifyStart   = "justify-start"
)

// ProviderVM is one social provider button.
type ProviderVM struct {
	ID          string
	Alias       string
	Href        string
	DisplayName template.HTML
	IconClasses string
}

// SocialVM is the social providers section.
type SocialVM struct {
	Label     string
	GridClass string
	Providers []ProviderVM
}

// InfoVM is the registration call to action.
type InfoVM struct {
	Prompt string
	Label  string
	Href   string
}

// VM is the login page view model.
type VM struct {
	Header         template.HTML
	DisplayMessage bool
	DisplayInfo    bool

	ShowForm bool
	Action   string

	ShowUsername  bool
	UsernameLabel string
	Username      string

	PasswordLabel     string
	ShowPasswordLabel string
	HidePasswordLabel string
	PasswordToggle    string
	Form              FormState

	UsernameGroupError string
	PasswordGroupError string
	FieldError         template.HTML
	ErrorUnderUsername bool
	ErrorUnderPassword bool
	AriaInvalid        bool

	ShowRememberMe    bool
	RememberMeChecked bool
	RememberMeLabel   string

	ShowResetLink bool
	ResetURL      string
	ResetLabel    string

	OptionsJustify string
	CredentialID   string
	SubmitLabel    string

	Social *SocialVM
	Info   *InfoVM
}

// UsernameLabelKey picks the username field label from the realm policy.
func UsernameLabelKey(r models.Realm) string {
	switch {
	case !r.LoginWithEmailAllowed:
		return "username"
	case !r.RegistrationEmailAsUsername:
		return "usernameOrEmail"
	default:
		return "email"
	}
}

// OptionsJustify aligns the remember-me and reset-password row.
func OptionsJustify(rememberMe, resetLink bool) string {
	switch {
	case rememberMe && resetLink:
		return JustifyBetween
	case resetLink:
		return JustifyCenter
	default:
		return JustifyStart
	}
}

// BuildVM computes the login page view model for kc.
func BuildVM(kc *models.KcContext, msg *i18n.Accessor) VM {
	realm := kc.Realm
	fieldErr := kc.MessagesPerField.ExistsError("username", "password")

	vm := VM{
		Header:         msg.Msg("loginAccountTitle"),
		DisplayMessage: !fieldErr,
		DisplayInfo:    realm.Password && realm.RegistrationAllowed && !kc.RegistrationDisabled,

		ShowForm: realm.Password,
		Action:   kc.URL.LoginAction,

		ShowUsername:  !kc.UsernameHidden,
		UsernameLabel: msg.MsgStr(UsernameLabelKey(realm)),
		Username:      kc.Login.Username,

		PasswordLabel:     msg.MsgStr("password"),
		ShowPasswordLabel: msg.MsgStr("showPassword"),
		HidePasswordLabel: msg.MsgStr("hidePassword"),

		AriaInvalid: fieldErr,

		ShowRememberMe:    realm.RememberMe && !kc.UsernameHidden,
		RememberMeChecked: kc.Login.RememberMe,
		RememberMeLabel:   msg.MsgStr("rememberMe"),

		ShowResetLink: realm.ResetPasswordAllowed,
		ResetURL:      kc.URL.LoginResetCredentialsURL,
		ResetLabel:    msg.MsgStr("doForgotPassword"),

		CredentialID: kc.SelectedCredential(),
		SubmitLabel:  msg.MsgStr("doLogIn"),
	}
	vm.PasswordToggle = msg.MsgStr(vm.Form.ToggleLabelKey())
	vm.OptionsJustify = OptionsJustify(vm.ShowRememberMe, vm.ShowResetLink)

	vm.UsernameGroupError = kc.MessagesPerField.PrintIfExists("username", "has-error")
	vm.PasswordGroupError = kc.MessagesPerField.PrintIfExists("password", "has-error")
	if fieldErr {
		vm.FieldError = htmlsanitize.SanitizeToHTML(kc.MessagesPerField.GetFirstError("username", "password"))
		vm.ErrorUnderUsername = vm.ShowUsername
		vm.ErrorUnderPassword = !vm.ShowUsername
	}

	if providers := kc.SocialProviders(); realm.Password && len(providers) > 0 {
		s := &SocialVM{
			Label:     msg.MsgStr("identity-provider-login-label"),
			GridClass: ui.SocialGridColumns(len(providers)),
		}
		for _, p := range providers {
			s.Providers = append(s.Providers, ProviderVM{
				ID:          "social-" + p.Alias,
				Alias:       p.Alias,
				Href:        p.LoginURL,
				DisplayName: msg.AdvancedMsg(p.DisplayName),
				IconClasses: p.IconClasses,
			})
		}
		vm.Social = s
	}

	if vm.DisplayInfo {
		vm.Info = &InfoVM{
			Prompt: msg.MsgStr("noAccount"),
			Label:  msg.MsgStr("doRegister"),
			Href:   kc.URL.RegistrationURL,
		}
	}
	return vm
}
