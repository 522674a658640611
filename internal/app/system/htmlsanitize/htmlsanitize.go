// Package htmlsanitize neutralizes markup supplied by the identity server
// (message summaries, field errors, provider names, localized messages)
// before it is rendered as part of a page.
//
// The policy is an allow-list of inline formatting elements plus links with
// http, https or mailto targets. Block elements, forms, media, scripts,
// styles and every event-handler attribute are dropped.
package htmlsanitize

import (
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// policy is built once; bluemonday policies are safe for concurrent use
// after construction.
var policy = newInlinePolicy()

func newInlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"b", "strong", "i", "em", "u", "s",
		"small", "mark", "sub", "sup", "code",
		"br", "span",
	)

	// Links: only absolute or mailto targets, always nofollow.
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)

	// Simple class names on spans, so themed messages can carry a
	// highlight class without opening up arbitrary attributes.
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)).OnElements("span")

	return p
}

// Sanitize returns s with everything outside the inline allow-list removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes s and marks the result safe for html/template.
// This is the only way server-supplied markup reaches a template unescaped.
func SanitizeToHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	return template.HTML(policy.Sanitize(s))
}
