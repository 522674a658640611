package ui

import "strings"

// Cn merges class lists: empty entries are skipped and repeated class names
// keep their first position.
func Cn(classes ...string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range classes {
		for _, f := range strings.Fields(c) {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}

// ClassKey names a themable element of the login pages (kcHtmlClass,
// kcFormGroupClass, ...). Each key is always emitted as a class itself so
// external stylesheets can target it.
type ClassKey string

// defaultClasses are the stock stylesheet classes added to each key when
// the default CSS is in use.
var defaultClasses = map[ClassKey]string{
	"kcHtmlClass":                         "login-pf",
	"kcBodyClass":                         "",
	"kcLoginClass":                        "login-pf-page",
	"kcHeaderClass":                       "login-pf-page-header",
	"kcHeaderWrapperClass":                "",
	"kcContentWrapperClass":               "row",
	"kcLabelWrapperClass":                 "col-xs-12 col-sm-12 col-md-12 col-lg-12",
	"kcLabelClass":                        "pf-c-form__label pf-c-form__label-text",
	"kcInputClass":                        "pf-c-form-control",
	"kcInputErrorMessageClass":            "pf-c-form__helper-text pf-m-error required kc-feedback-text",
	"kcFormGroupClass":                    "form-group",
	"kcFormSettingClass":                  "login-pf-settings",
	"kcFormOptionsWrapperClass":           "",
	"kcFormSocialAccountSectionClass":     "",
	"kcButtonClass":                       "pf-c-button",
	"kcButtonPrimaryClass":                "pf-m-primary",
	"kcButtonBlockClass":                  "pf-m-block",
	"kcButtonLargeClass":                  "btn-lg",
	"kcCommonLogoIdP":                     "kc-social-provider-logo kc-social-gray",
	"kcFormPasswordVisibilityButtonClass": "pf-c-button pf-m-control",
}

// Clsx resolves class keys to class lists, optionally layering the stock
// stylesheet classes and per-deployment overrides on top of the key names.
type Clsx struct {
	UseDefaultCSS bool
	Overrides     map[ClassKey]string
}

// Classes returns the merged classes for keys.
func (x Clsx) Classes(keys ...string) string {
	parts := make([]string, 0, len(keys)*3)
	for _, k := range keys {
		key := ClassKey(k)
		parts = append(parts, k)
		if x.UseDefaultCSS {
			parts = append(parts, defaultClasses[key])
		}
		if x.Overrides != nil {
			parts = append(parts, x.Overrides[key])
		}
	}
	return Cn(parts...)
}
