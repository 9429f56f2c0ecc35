package sanitizer

import (
	"html"
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = sync.OnceValue(bluemonday.StrictPolicy)
	emailPolicy = sync.OnceValue(NewEmailPolicy)
)

// NewEmailPolicy returns the policy applied to rendered email fragments.
// It is the UGC policy plus the "btn" class on links, so markdown output and
// the Reply button survive while scripts, handlers and unsafe URLs are dropped.
func NewEmailPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^btn$`)).OnElements("a")
	p.RequireNoFollowOnLinks(false)
	return p
}

// StripHTML removes every tag and returns the remaining text.
// Entities stay escaped, so the result is still safe inside HTML.
func StripHTML(s string) string {
	return stripPolicy().Sanitize(s)
}

// PlainText strips all markup and unescapes entities. The result is meant
// for terminals and notifications, never for HTML output.
func PlainText(s string) string {
	return html.UnescapeString(StripHTML(s))
}

// SanitizeEmailHTML applies the policy built by NewEmailPolicy.
func SanitizeEmailHTML(s string) string {
	return emailPolicy().Sanitize(s)
}

// SanitizeHTMLCustom applies policy, or returns s unchanged when policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
