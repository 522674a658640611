// Package ui holds the primitive display components used by the page
// templates: closed variant enumerations mapped to class tables, a class
// merge helper, the keycloak class-key resolver and the icon set.
//
// Templates never build variant classes by string concatenation; they ask
// this package for the classes of a variant.
package ui

import "github.com/dalemusser/authpages/internal/domain/models"

// AlertVariant selects the visual style of an alert banner.
type AlertVariant string

const (
	AlertDefault     AlertVariant = "default"
	AlertDestructive AlertVariant = "destructive"
	AlertSuccess     AlertVariant = "success"
	AlertInfo        AlertVariant = "info"
	AlertWarning     AlertVariant = "warning"
	AlertDanger      AlertVariant = "danger"
	AlertError       AlertVariant = "error"
)

const alertBase = "relative w-full rounded-lg border px-4 py-3 text-sm grid has-[>svg]:grid-cols-[calc(var(--spacing)*4)_1fr] grid-cols-[0_1fr] has-[>svg]:gap-x-3 gap-y-0.5 items-start [&>svg]:size-4 [&>svg]:translate-y-0.5 [&>svg]:text-current"

var alertVariants = map[AlertVariant]string{
	AlertDefault:     "bg-card text-card-foreground",
	AlertDestructive: "text-destructive bg-card [&>svg]:text-current *:data-[slot=alert-description]:text-destructive/90",
	AlertSuccess:     "bg-green-100 text-green-800 border-green-200 [&>svg]:text-green-600 *:data-[slot=alert-description]:text-green-700",
	AlertInfo:        "bg-blue-100 text-blue-800 border-blue-200 [&>svg]:text-blue-600 *:data-[slot=alert-description]:text-blue-700",
	AlertWarning:     "bg-yellow-100 text-yellow-800 border-yellow-200 [&>svg]:text-yellow-600 *:data-[slot=alert-description]:text-yellow-700",
	AlertDanger:      "bg-red-100 text-red-800 border-red-200 [&>svg]:text-red-600 *:data-[slot=alert-description]:text-red-700",
	AlertError:       "bg-red-100 text-red-800 border-red-200 [&>svg]:text-red-600 *:data-[slot=alert-description]:text-red-700",
}

// AlertClasses returns the classes for an alert of the given variant.
// Unknown variants render as AlertDefault.
func AlertClasses(v AlertVariant, extra ...string) string {
	cls, ok := alertVariants[v]
	if !ok {
		cls = alertVariants[AlertDefault]
	}
	return Cn(append([]string{alertBase, cls}, extra...)...)
}

// AlertDescriptionClasses are the classes of the alert body slot.
const AlertDescriptionClasses = "text-muted-foreground col-start-2 grid justify-items-start gap-1 text-sm [&_p]:leading-relaxed"

// AlertTitleClasses are the classes of the alert title slot.
const AlertTitleClasses = "col-start-2 line-clamp-1 min-h-4 font-medium tracking-tight"

// ButtonVariant selects the visual style of a button or button-styled link.
type ButtonVariant string

const (
	ButtonDefault     ButtonVariant = "default"
	ButtonDestructive ButtonVariant = "destructive"
	ButtonOutline     ButtonVariant = "outline"
	ButtonSecondary   ButtonVariant = "secondary"
	ButtonGhost       ButtonVariant = "ghost"
	ButtonLink        ButtonVariant = "link"
)

const buttonBase = "inline-flex items-center justify-center gap-2 whitespace-nowrap rounded-md text-sm font-medium transition-all disabled:pointer-events-none disabled:opacity-50 [&_svg]:pointer-events-none [&_svg:not([class*='size-'])]:size-4 shrink-0 [&_svg]:shrink-0 outline-none focus-visible:border-ring focus-visible:ring-ring/50 focus-visible:ring-[3px]"

var buttonVariants = map[ButtonVariant]string{
	ButtonDefault:     "bg-primary text-primary-foreground shadow-xs hover:bg-primary/90 h-9 px-4 py-2",
	ButtonDestructive: "bg-destructive text-white shadow-xs hover:bg-destructive/90 h-9 px-4 py-2",
	ButtonOutline:     "border bg-background shadow-xs hover:bg-accent hover:text-accent-foreground h-9 px-4 py-2",
	ButtonSecondary:   "bg-secondary text-secondary-foreground shadow-xs hover:bg-secondary/80 h-9 px-4 py-2",
	ButtonGhost:       "hover:bg-accent hover:text-accent-foreground h-9 px-4 py-2",
	ButtonLink:        "text-primary underline-offset-4 hover:underline h-auto px-0",
}

// ButtonClasses returns the classes for a button of the given variant.
// Unknown variants render as ButtonDefault.
func ButtonClasses(v ButtonVariant, extra ...string) string {
	cls, ok := buttonVariants[v]
	if !ok {
		cls = buttonVariants[ButtonDefault]
	}
	return Cn(append([]string{buttonBase, cls}, extra...)...)
}

// Fixed component classes. These have no variants.
const (
	CardClasses            = "bg-card text-card-foreground flex flex-col gap-6 rounded-xl border py-6 shadow-sm"
	CardHeaderClasses      = "grid auto-rows-min grid-rows-[auto_auto] items-start gap-1.5 px-6 has-[data-slot=card-action]:grid-cols-[1fr_auto]"
	CardTitleClasses       = "leading-none font-semibold"
	CardDescriptionClasses = "text-muted-foreground text-sm"
	CardActionClasses      = "col-start-2 row-span-2 row-start-1 self-start justify-self-end"
	CardContentClasses     = "px-6"
	InputClasses           = "flex h-9 w-full min-w-0 rounded-md border bg-transparent px-3 py-1 text-base shadow-xs outline-none md:text-sm aria-invalid:border-destructive"
	LabelClasses           = "flex items-center gap-2 text-sm leading-none font-medium select-none"
	CheckboxClasses        = "size-4 shrink-0 rounded-[4px] border shadow-xs"
	SelectClasses          = "w-auto bg-transparent hover:bg-accent text-foreground px-2 py-1 h-auto rounded-md border-none shadow-none focus:ring-0"
	SeparatorClasses       = "bg-border shrink-0 h-px w-full"
	FormMessageClasses     = "text-destructive text-sm"
)

// MessageAlertVariant maps a page message kind to its alert variant.
func MessageAlertVariant(t models.MessageType) AlertVariant {
	switch t {
	case models.MessageSuccess:
		return AlertSuccess
	case models.MessageWarning:
		return AlertWarning
	case models.MessageError:
		return AlertError
	case models.MessageInfo:
		return AlertInfo
	}
	return AlertDefault
}

// SocialGridColumns returns the grid column class for n provider buttons:
// one, two or three side by side, stacked in a single column beyond that.
func SocialGridColumns(n int) string {
	switch n {
	case 2:
		return "grid-cols-2"
	case 3:
		return "grid-cols-3"
	}
	return "grid-cols-1"
}
