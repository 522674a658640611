// Package i18n provides the message accessor the page templates use:
// message lookup by key with positional parameters, plus the current and
// enabled languages of the flow being rendered.
//
// Catalogs are embedded JSON files, one per language tag. Messages use
// positional placeholders ({0}, {1}, ...) and a doubled single quote for a
// literal one, the same convention as the identity server's own bundles.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dalemusser/authpages/internal/app/system/htmlsanitize"
	"github.com/dalemusser/authpages/internal/domain/models"
	"golang.org/x/text/language"
)

//go:embed messages/*.json
var messagesFS embed.FS

// Language is one enabled locale of the current flow.
type Language struct {
	LanguageTag string
	Label       string
	Href        string
}

// Catalog holds the message bundles of every shipped language.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	bundles  map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	fallback string
}

// Load builds a Catalog from the embedded bundles. fallback is the language
// used when neither the context nor the browser selects a shipped one.
func Load(fallback string) (*Catalog, error) {
	bundles := make(map[string]map[string]string)
	entries, err := fs.Glob(messagesFS, "messages/*.json")
	if err != nil {
		return nil, fmt.Errorf("list message bundles: %w", err)
	}
	for _, name := range entries {
		raw, err := messagesFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var msgs map[string]string
		if err := json.Unmarshal(raw, &msgs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		tag := strings.TrimSuffix(path.Base(name), ".json")
		bundles[tag] = msgs
	}
	return NewCatalog(bundles, fallback)
}

// NewCatalog builds a Catalog from in-memory bundles keyed by language tag.
func NewCatalog(bundles map[string]map[string]string, fallback string) (*Catalog, error) {
	fallback = normalizeTag(fallback)
	if _, ok := bundles[fallback]; !ok {
		return nil, fmt.Errorf("fallback language %q has no message bundle", fallback)
	}

	c := &Catalog{
		bundles:  make(map[string]map[string]string, len(bundles)),
		fallback: fallback,
	}
	names := make([]string, 0, len(bundles))
	for tag, msgs := range bundles {
		norm := normalizeTag(tag)
		c.bundles[norm] = msgs
		if norm != fallback {
			names = append(names, norm)
		}
	}
	sort.Strings(names)

	// The matcher treats its first tag as the default.
	c.tags = append(c.tags, language.Make(fallback))
	for _, n := range names {
		c.tags = append(c.tags, language.Make(n))
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Negotiate picks the shipped language that best serves an Accept-Language
// header, or the fallback when nothing matches.
func (c *Catalog) Negotiate(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return c.fallback
	}
	_, idx := language.MatchStrings(c.matcher, acceptLanguage)
	if idx < 0 || idx >= len(c.tags) {
		return c.fallback
	}
	return normalizeTag(c.tags[idx].String())
}

// For returns the accessor for one render of kc. The context's locale wins;
// without one the browser's Accept-Language header selects the language.
func (c *Catalog) For(kc *models.KcContext, acceptLanguage string) *Accessor {
	a := &Accessor{catalog: c}

	current := ""
	if kc != nil && kc.Locale != nil {
		current = strings.TrimSpace(kc.Locale.CurrentLanguageTag)
	}
	if current == "" {
		current = c.Negotiate(acceptLanguage)
	}
	a.bundle = c.resolve(current)

	if kc != nil && kc.Locale != nil {
		for _, s := range kc.Locale.Supported {
			lang := Language{LanguageTag: s.LanguageTag, Label: s.Label, Href: s.URL}
			if lang.Label == "" {
				lang.Label = c.label(s.LanguageTag)
			}
			a.enabled = append(a.enabled, lang)
			if strings.EqualFold(s.LanguageTag, current) {
				a.current = lang
			}
		}
	}
	if a.current.LanguageTag == "" {
		a.current = Language{LanguageTag: current, Label: c.label(current)}
	}
	if len(a.enabled) == 0 {
		a.enabled = []Language{a.current}
	}
	return a
}

// resolve finds the bundle for tag: exact match, then base language, then
// the fallback.
func (c *Catalog) resolve(tag string) map[string]string {
	norm := normalizeTag(tag)
	if b, ok := c.bundles[norm]; ok {
		return b
	}
	if base, conf := language.Make(norm).Base(); conf != language.No {
		if b, ok := c.bundles[base.String()]; ok {
			return b
		}
	}
	return c.bundles[c.fallback]
}

func (c *Catalog) label(tag string) string {
	key := "locale_" + normalizeTag(tag)
	if s, ok := c.resolve(tag)[key]; ok {
		return s
	}
	return tag
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
}

// Accessor answers message lookups for one render. It is never shared
// between requests.
type Accessor struct {
	catalog *Catalog
	bundle  map[string]string
	current Language
	enabled []Language
}

// CurrentLanguage returns the active language.
func (a *Accessor) CurrentLanguage() Language { return a.current }

// EnabledLanguages returns every language the flow can switch to.
func (a *Accessor) EnabledLanguages() []Language { return a.enabled }

// MsgStr returns the formatted message for key as plain text. Unknown keys
// fall back to the fallback bundle and then to the key itself.
func (a *Accessor) MsgStr(key string, params ...string) string {
	return format(a.lookup(key), params)
}

// Msg returns the formatted message for key as sanitized markup.
func (a *Accessor) Msg(key string, params ...string) template.HTML {
	return htmlsanitize.SanitizeToHTML(a.MsgStr(key, params...))
}

// AdvancedMsgStr resolves server-supplied text that may itself be a message
// reference of the form ${key}; anything else is returned unchanged.
func (a *Accessor) AdvancedMsgStr(s string) string {
	if m := refPattern.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		return a.MsgStr(m[1])
	}
	return s
}

// AdvancedMsg is AdvancedMsgStr as sanitized markup.
func (a *Accessor) AdvancedMsg(s string) template.HTML {
	return htmlsanitize.SanitizeToHTML(a.AdvancedMsgStr(s))
}

var refPattern = regexp.MustCompile(`^\$\{([^}]+)\}$`)

func (a *Accessor) lookup(key string) string {
	if s, ok := a.bundle[key]; ok {
		return s
	}
	if s, ok := a.catalog.bundles[a.catalog.fallback][key]; ok {
		return s
	}
	return key
}

var placeholder = regexp.MustCompile(`\{(\d+)\}`)

// format collapses doubled single quotes and substitutes {n} placeholders
// with params[n]. Placeholders without a parameter render as empty.
func format(msg string, params []string) string {
	msg = strings.ReplaceAll(msg, "''", "'")
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		n, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || n >= len(params) {
			return ""
		}
		return params[n]
	})
}
