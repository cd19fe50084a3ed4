package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	"{", "&#123;",
	"}", "&#125;",
)

// EscapeHTML escapes the characters that could open markup or a directive.
func EscapeHTML(s string) string {
	return textEscaper.Replace(s)
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

func plainTextPolicy() *bluemonday.Policy {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return plainPolicy
}

// PlainText strips every tag from s and re-escapes the remaining text with
// EscapeHTML.
func PlainText(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	stripped := html.UnescapeString(plainTextPolicy().Sanitize(trimmed))
	return EscapeHTML(normalizeSpace(stripped))
}
