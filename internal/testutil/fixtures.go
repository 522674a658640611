package testutil

import (
	"github.com/dalemusser/authpages/internal/domain/models"
)

// LoginContext returns a login page context with the common features on:
// password login, remember-me, reset link, registration and two providers.
// Each call returns a fresh value that callers may modify.
func LoginContext() models.KcContext {
	return models.KcContext{
		PageID: models.PageLogin,
		Realm: models.Realm{
			Name:                  "acme",
			DisplayName:           "Acme",
			DisplayNameHTML:       "<b>Acme</b> Corp",
			Password:              true,
			RegistrationAllowed:   true,
			RememberMe:            true,
			ResetPasswordAllowed:  true,
			LoginWithEmailAllowed: true,
		},
		URL: models.URLs{
			LoginAction:              "https://id.example.com/realms/acme/login-actions/authenticate?session_code=abc",
			RegistrationURL:          "https://id.example.com/realms/acme/login-actions/registration",
			LoginResetCredentialsURL: "https://id.example.com/realms/acme/login-actions/reset-credentials",
			LoginRestartFlowURL:      "https://id.example.com/realms/acme/login-actions/restart",
		},
		Social: &models.Social{Providers: []models.Provider{
			{Alias: "github", DisplayName: "GitHub", LoginURL: "https://id.example.com/realms/acme/broker/github/login", ProviderID: "github"},
			{Alias: "google", DisplayName: "Google", LoginURL: "https://id.example.com/realms/acme/broker/google/login", ProviderID: "google"},
		}},
	}
}

// WithLanguages adds a locale section with the given tags, each linking to a
// kc_locale URL. The first tag is current.
func WithLanguages(kc models.KcContext, tags ...string) models.KcContext {
	if len(tags) == 0 {
		return kc
	}
	labels := map[string]string{"en": "English", "de": "Deutsch", "fr": "Français", "es": "Español"}
	loc := &models.Locale{CurrentLanguageTag: tags[0]}
	for _, tag := range tags {
		label := labels[tag]
		if label == "" {
			label = tag
		}
		loc.Supported = append(loc.Supported, models.SupportedLocale{
			LanguageTag: tag,
			Label:       label,
			URL:         "https://id.example.com/realms/acme/login-actions/authenticate?kc_locale=" + tag,
		})
	}
	kc.Locale = loc
	return kc
}
