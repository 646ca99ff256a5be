// Package language maps ISO 639 codes to the English labels addic7ed.com uses.
package language

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var codePattern = regexp.MustCompile(`^[A-Za-z]{2,3}(?:[-_][A-Za-z0-9]{2,8})*$`)

// bibliographic holds the ISO 639-2/B codes containers often carry, keyed to
// their terminology form.
var bibliographic = map[string]string{
	"alb": "sqi",
	"arm": "hye",
	"baq": "eus",
	"bur": "mya",
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"geo": "kat",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"mac": "mkd",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"wel": "cym",
}

// siteLabels rewrites English display names whose site label differs.
var siteLabels = map[string]string{
	"Brazilian Portuguese":   "Portuguese (Brazilian)",
	"Canadian French":        "French (Canadian)",
	"Latin American Spanish": "Spanish (Latin America)",
	"Simplified Chinese":     "Chinese (Simplified)",
	"Traditional Chinese":    "Chinese (Traditional)",
}

// ToSiteLabel turns an ISO 639 code ("fr", "fre", "pt-BR") into the site
// label ("French", "Portuguese (Brazilian)"). Anything that is not a known
// code is returned unchanged, so labels pass through.
func ToSiteLabel(value string) string {
	value = strings.TrimSpace(value)
	if !codePattern.MatchString(value) {
		return value
	}

	code := strings.ReplaceAll(value, "_", "-")
	primary, rest, _ := strings.Cut(code, "-")
	if t, ok := bibliographic[strings.ToLower(primary)]; ok {
		code = t
		if rest != "" {
			code += "-" + rest
		}
	}

	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return value
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return value
	}
	if label, ok := siteLabels[name]; ok {
		return label
	}
	return name
}

// Matches reports whether an embedded stream tag designates the requested
// language. The tag matches when it starts with the request or when both
// normalise to the same site label.
func Matches(tag, requested string) bool {
	tag = strings.TrimSpace(tag)
	requested = strings.TrimSpace(requested)
	if tag == "" || requested == "" {
		return false
	}
	if strings.HasPrefix(strings.ToLower(tag), strings.ToLower(requested)) {
		return true
	}
	return strings.EqualFold(ToSiteLabel(tag), ToSiteLabel(requested))
}

// AnyMatches reports whether one of tags designates requested.
func AnyMatches(tags []string, requested string) bool {
	for _, t := range tags {
		if Matches(t, requested) {
			return true
		}
	}
	return false
}
