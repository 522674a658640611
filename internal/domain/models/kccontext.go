// internal/domain/models/kccontext.go
package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// PageLogin is the page id of the username/password login page.
const PageLogin = "login.ftl"

// MessageType is the kind tag of a page-level message.
type MessageType string

const (
	MessageSuccess MessageType = "success"
	MessageWarning MessageType = "warning"
	MessageError   MessageType = "error"
	MessageInfo    MessageType = "info"
)

// Valid reports whether t is one of the four known kinds.
func (t MessageType) Valid() bool {
	switch t {
	case MessageSuccess, MessageWarning, MessageError, MessageInfo:
		return true
	}
	return false
}

// KcContext is the read-only page context produced by the identity server.
// One context drives exactly one render; nothing in this service mutates it.
type KcContext struct {
	PageID string `bson:"page_id" json:"pageId"`

	Realm Realm `bson:"realm" json:"realm"`
	URL   URLs  `bson:"url" json:"url"`

	// Optional sections. A nil pointer means the section is absent.
	Auth    *Auth    `bson:"auth,omitempty" json:"auth,omitempty"`
	Message *Message `bson:"message,omitempty" json:"message,omitempty"`
	Social  *Social  `bson:"social,omitempty" json:"social,omitempty"`
	Locale  *Locale  `bson:"locale,omitempty" json:"locale,omitempty"`

	Login            LoginValues      `bson:"login" json:"login"`
	MessagesPerField MessagesPerField `bson:"messages_per_field,omitempty" json:"messagesPerField,omitempty"`

	UsernameHidden       bool `bson:"username_hidden" json:"usernameHidden"`
	RegistrationDisabled bool `bson:"registration_disabled" json:"registrationDisabled"`
	IsAppInitiatedAction bool `bson:"is_app_initiated_action" json:"isAppInitiatedAction"`
}

// Realm carries the server-side policy flags for the login features.
type Realm struct {
	Name                        string `bson:"name,omitempty" json:"name,omitempty"`
	DisplayName                 string `bson:"display_name" json:"displayName"`
	DisplayNameHTML             string `bson:"display_name_html,omitempty" json:"displayNameHtml,omitempty"`
	Password                    bool   `bson:"password" json:"password"`
	RegistrationAllowed         bool   `bson:"registration_allowed" json:"registrationAllowed"`
	RememberMe                  bool   `bson:"remember_me" json:"rememberMe"`
	ResetPasswordAllowed        bool   `bson:"reset_password_allowed" json:"resetPasswordAllowed"`
	LoginWithEmailAllowed       bool   `bson:"login_with_email_allowed" json:"loginWithEmailAllowed"`
	RegistrationEmailAsUsername bool   `bson:"registration_email_as_username" json:"registrationEmailAsUsername"`
}

// URLs are the absolute action and navigation URLs of the current flow.
type URLs struct {
	LoginAction              string `bson:"login_action" json:"loginAction"`
	RegistrationURL          string `bson:"registration_url,omitempty" json:"registrationUrl,omitempty"`
	LoginResetCredentialsURL string `bson:"login_reset_credentials_url,omitempty" json:"loginResetCredentialsUrl,omitempty"`
	LoginRestartFlowURL      string `bson:"login_restart_flow_url,omitempty" json:"loginRestartFlowUrl,omitempty"`
	ResourcesPath            string `bson:"resources_path,omitempty" json:"resourcesPath,omitempty"`
}

// Auth describes the partially completed authentication, when there is one.
type Auth struct {
	AttemptedUsername     string `bson:"attempted_username,omitempty" json:"attemptedUsername,omitempty"`
	ShowUsername          bool   `bson:"show_username" json:"showUsername"`
	ShowResetCredentials  bool   `bson:"show_reset_credentials" json:"showResetCredentials"`
	ShowTryAnotherWayLink bool   `bson:"show_try_another_way_link" json:"showTryAnotherWayLink"`
	SelectedCredential    string `bson:"selected_credential,omitempty" json:"selectedCredential,omitempty"`
}

// LoginValues are the values the user submitted on the previous attempt.
type LoginValues struct {
	Username   string `bson:"username,omitempty" json:"username,omitempty"`
	RememberMe bool   `bson:"remember_me" json:"rememberMe"`
}

// Message is the page-level message shown in the banner.
type Message struct {
	Type    MessageType `bson:"type" json:"type"`
	Summary string      `bson:"summary" json:"summary"`
}

// Social lists the identity providers offered next to the password form.
type Social struct {
	Providers []Provider `bson:"providers,omitempty" json:"providers,omitempty"`
}

// Provider is one social identity provider link.
type Provider struct {
	Alias       string `bson:"alias" json:"alias"`
	DisplayName string `bson:"display_name" json:"displayName"`
	LoginURL    string `bson:"login_url" json:"loginUrl"`
	ProviderID  string `bson:"provider_id,omitempty" json:"providerId,omitempty"`
	IconClasses string `bson:"icon_classes,omitempty" json:"iconClasses,omitempty"`
}

// Locale lists the enabled languages and the active one.
type Locale struct {
	CurrentLanguageTag string            `bson:"current_language_tag" json:"currentLanguageTag"`
	Supported          []SupportedLocale `bson:"supported,omitempty" json:"supported,omitempty"`
}

// SupportedLocale is one enabled language. URL switches the flow to it.
type SupportedLocale struct {
	LanguageTag string `bson:"language_tag" json:"languageTag"`
	Label       string `bson:"label" json:"label"`
	URL         string `bson:"url" json:"url"`
}

// ShowsAttemptedUsername reports whether the title block should show the
// attempted username and the restart link instead of the page header.
func (c *KcContext) ShowsAttemptedUsername() bool {
	return c.Auth != nil && c.Auth.ShowUsername && !c.Auth.ShowResetCredentials
}

// ShowsTryAnotherWay reports whether the alternate-flow form applies.
func (c *KcContext) ShowsTryAnotherWay() bool {
	return c.Auth != nil && c.Auth.ShowTryAnotherWayLink
}

// SelectedCredential returns auth.selectedCredential, or "" without auth.
func (c *KcContext) SelectedCredential() string {
	if c.Auth == nil {
		return ""
	}
	return c.Auth.SelectedCredential
}

// SocialProviders returns the provider list, nil when social is absent.
func (c *KcContext) SocialProviders() []Provider {
	if c.Social == nil {
		return nil
	}
	return c.Social.Providers
}

// ErrInvalidContext is wrapped by every error Validate returns.
var ErrInvalidContext = errors.New("invalid page context")

// Validate checks the structural requirements a render depends on.
// Optional sections may be absent; present ones must be well formed.
func (c *KcContext) Validate() error {
	if strings.TrimSpace(c.PageID) == "" {
		return fmt.Errorf("%w: pageId is required", ErrInvalidContext)
	}
	if err := absoluteURL("url.loginAction", c.URL.LoginAction); err != nil {
		return err
	}
	for _, opt := range []struct{ name, v string }{
		{"url.registrationUrl", c.URL.RegistrationURL},
		{"url.loginResetCredentialsUrl", c.URL.LoginResetCredentialsURL},
		{"url.loginRestartFlowUrl", c.URL.LoginRestartFlowURL},
	} {
		if opt.v == "" {
			continue
		}
		if err := absoluteURL(opt.name, opt.v); err != nil {
			return err
		}
	}
	if c.Message != nil && !c.Message.Type.Valid() {
		return fmt.Errorf("%w: unknown message type %q", ErrInvalidContext, c.Message.Type)
	}
	for i, p := range c.SocialProviders() {
		if p.Alias == "" {
			return fmt.Errorf("%w: social.providers[%d].alias is required", ErrInvalidContext, i)
		}
		if err := absoluteURL(fmt.Sprintf("social.providers[%d].loginUrl", i), p.LoginURL); err != nil {
			return err
		}
	}
	return nil
}

// absoluteURL accepts http(s) URLs with a host, or a root-relative path the
// identity server serves on its own origin.
func absoluteURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidContext, field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidContext, field, err)
	}
	if u.Scheme == "" && strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return nil
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL", ErrInvalidContext, field)
	}
	return nil
}
