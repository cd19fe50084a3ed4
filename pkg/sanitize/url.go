package sanitize

import (
	"errors"
	"net/url"
	"strings"
	"unicode"
)

var dangerousSchemes = []string{"javascript:", "data:", "vbscript:", "file:"}

var (
	errDangerousScheme = errors.New("dangerous URL scheme")
	errNotHTTP         = errors.New("only absolute http(s) URLs are allowed")
)

var cssURLEscaper = strings.NewReplacer(
	`'`, "%27",
	`"`, "%22",
	"(", "%28",
	")", "%29",
	`\`, "%5C",
	"<", "%3C",
	">", "%3E",
	" ", "%20",
	"{", "%7B",
	"}", "%7D",
)

// SafeURL returns raw when it is an absolute http(s) URL. Dangerous schemes
// and anything else yield "" with an explanatory error. Characters that could
// break out of a quoted CSS url() or form a directive are percent-encoded.
func SafeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	lowered := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, trimmed))
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lowered, scheme) {
			return "", errDangerousScheme
		}
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", errNotHTTP
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return "", errNotHTTP
	}
	return cssURLEscaper.Replace(u.String()), nil
}
