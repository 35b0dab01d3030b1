// Package htmlsanitize cleans operator-supplied HTML (the configurable page
// footer) before it is rendered unescaped.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// footerPolicy allows the user-generated-content set plus class attributes,
// without forcing rel="nofollow" onto links.
func footerPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(false)
		p.AllowAttrs("class").Globally()
		policy = p
	})
	return policy
}

// Sanitize strips scripts, event handlers, iframes, styles and unsafe URLs
// from s.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return footerPolicy().Sanitize(s)
}

// SanitizeToHTML sanitizes s and marks the result safe for templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no markup.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
