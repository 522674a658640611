package ui

import (
	"html/template"
)

// fixed maps template-facing names to the fixed component classes.
var fixed = map[string]string{
	"card":             CardClasses,
	"cardHeader":       CardHeaderClasses,
	"cardTitle":        CardTitleClasses,
	"cardDescription":  CardDescriptionClasses,
	"cardAction":       CardActionClasses,
	"cardContent":      CardContentClasses,
	"input":            InputClasses,
	"label":            LabelClasses,
	"checkbox":         CheckboxClasses,
	"select":           SelectClasses,
	"separator":        SeparatorClasses,
	"formMessage":      FormMessageClasses,
	"alertTitle":       AlertTitleClasses,
	"alertDescription": AlertDescriptionClasses,
}

// FuncMap returns the template helpers shared by the layout and the pages.
// clsx resolves kcClsx keys for the deployment's theme.
func FuncMap(clsx Clsx) template.FuncMap {
	return template.FuncMap{
		"kcClsx": clsx.Classes,
		"ui": func(name string) string {
			return fixed[name]
		},
		"buttonClasses": func(variant string, extra ...string) string {
			return ButtonClasses(ButtonVariant(variant), extra...)
		},
		"icon": func(name string) template.HTML {
			return SVG(Icon(name))
		},
	}
}
