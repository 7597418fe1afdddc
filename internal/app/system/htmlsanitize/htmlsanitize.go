// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize cleans user-supplied text before it is stored.
// Rich-text description fields keep a safe HTML subset; single-line fields
// (names, reasons) are stripped to plain text.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("u", "s", "sub", "sup", "mark")
		p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
		p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		rich = p
		strict = bluemonday.StrictPolicy()
	})
	return rich, strict
}

// Sanitize keeps a safe rich-text subset: formatting, lists, headings,
// tables, and links. Scripts, event handlers, and javascript: URLs are
// removed.
func Sanitize(s string) string {
	p, _ := policies()
	return p.Sanitize(s)
}

// Strip removes every tag, returning trimmed plain text. Used for names,
// update reasons, and other single-line fields.
func Strip(s string) string {
	_, p := policies()
	return strings.TrimSpace(p.Sanitize(s))
}
