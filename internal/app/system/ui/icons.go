package ui

import (
	"html/template"

	"github.com/dalemusser/authpages/internal/domain/models"
)

// Icon names an inline SVG icon.
type Icon string

const (
	IconCircleCheck   Icon = "circle-check"
	IconAlertTriangle Icon = "alert-triangle"
	IconAlertOctagon  Icon = "alert-octagon"
	IconInfo          Icon = "info"
	IconRefresh       Icon = "refresh-ccw"
	IconEye           Icon = "eye"
	IconEyeClosed     Icon = "eye-closed"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true" class="icon icon-`

var iconPaths = map[Icon]string{
	IconCircleCheck:   `<circle cx="12" cy="12" r="10"/><path d="m9 12 2 2 4-4"/>`,
	IconAlertTriangle: `<path d="m21.73 18-8-14a2 2 0 0 0-3.48 0l-8 14A2 2 0 0 0 4 21h16a2 2 0 0 0 1.73-3"/><path d="M12 9v4"/><path d="M12 17h.01"/>`,
	IconAlertOctagon:  `<path d="M12 16h.01"/><path d="M12 8v4"/><path d="M15.312 2a2 2 0 0 1 1.414.586l4.688 4.688A2 2 0 0 1 22 8.688v6.624a2 2 0 0 1-.586 1.414l-4.688 4.688a2 2 0 0 1-1.414.586H8.688a2 2 0 0 1-1.414-.586l-4.688-4.688A2 2 0 0 1 2 15.312V8.688a2 2 0 0 1 .586-1.414l4.688-4.688A2 2 0 0 1 8.688 2z"/>`,
	IconInfo:          `<circle cx="12" cy="12" r="10"/><path d="M12 16v-4"/><path d="M12 8h.01"/>`,
	IconRefresh:       `<path d="M21 12a9 9 0 0 0-9-9 9.75 9.75 0 0 0-6.74 2.74L3 8"/><path d="M3 3v5h5"/><path d="M3 12a9 9 0 0 0 9 9 9.75 9.75 0 0 0 6.74-2.74L21 16"/><path d="M16 16h5v5"/>`,
	IconEye:           `<path d="M2.062 12.348a1 1 0 0 1 0-.696 10.75 10.75 0 0 1 19.876 0 1 1 0 0 1 0 .696 10.75 10.75 0 0 1-19.876 0"/><circle cx="12" cy="12" r="3"/>`,
	IconEyeClosed:     `<path d="m15 18-.722-3.25"/><path d="M2 8a10.645 10.645 0 0 0 20 0"/><path d="m20 15-1.726-2.05"/><path d="m4 15 1.726-2.05"/><path d="m9 18 .722-3.25"/>`,
}

// SVG returns the inline markup for icon, or "" for an unknown icon.
// The markup is a compile-time constant, so marking it safe is sound.
func SVG(icon Icon) template.HTML {
	paths, ok := iconPaths[icon]
	if !ok {
		return ""
	}
	return template.HTML(svgOpen + string(icon) + `">` + paths + `</svg>`)
}

// MessageIcon maps a page message kind to its banner icon:
// success→check, warning→triangle, error→octagon, info→info.
func MessageIcon(t models.MessageType) Icon {
	switch t {
	case models.MessageSuccess:
		return IconCircleCheck
	case models.MessageWarning:
		return IconAlertTriangle
	case models.MessageError:
		return IconAlertOctagon
	case models.MessageInfo:
		return IconInfo
	}
	return ""
}
