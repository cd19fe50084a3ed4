package directive

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/theme"
)

// StyleID is the id of the injected theme stylesheet.
const StyleID = "cardgen-theme"

var (
	fieldToken   = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	ifBlock      = regexp.MustCompile(`(?s)\{\{#if\s+([A-Za-z_][A-Za-z0-9_]*)\s*\}\}(.*?)\{\{/if\}\}`)
	eachBlock    = regexp.MustCompile(`(?s)\{\{#each\s+([A-Za-z_][A-Za-z0-9_]*)\s*\}\}(.*?)\{\{/each\}\}`)
	itemToken    = regexp.MustCompile(`\{\{\s*(@?[A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	paletteToken = regexp.MustCompile(`\{\{\s*theme\.(color|gradient|shadow)\.([A-Za-z0-9_-]+)\s*\}\}`)
	styleBlock   = regexp.MustCompile(`(?is)<style id="` + StyleID + `">.*?</style>\n?`)
	headClose    = regexp.MustCompile(`(?i)</head>`)
	anyToken     = regexp.MustCompile(`\{\{[^{}]*\}\}`)
)

// ThemeResolver supplies palette values and variable maps.
type ThemeResolver interface {
	Variables(name string) map[string]string
	ResolvePlaceholder(kind theme.Kind, key, themeName string) (string, bool)
}

// Option customises a Processor.
type Option func(*Processor)

// WithThemes sets the palette source.
func WithThemes(themes ThemeResolver) Option {
	return func(p *Processor) {
		if themes != nil {
			p.themes = themes
		}
	}
}

// WithLogger sets the logger used to report unresolved tokens.
func WithLogger(logger logging.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Processor resolves directives. It holds no per-render state and is safe for
// concurrent use.
type Processor struct {
	themes ThemeResolver
	logger logging.Logger
}

// New builds a Processor. Without WithThemes the stock theme registry is
// used.
func New(options ...Option) *Processor {
	p := &Processor{logger: logging.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.themes == nil {
		p.themes = theme.NewRegistry(theme.WithLogger(p.logger))
	}
	return p
}

// Process returns tpl with every resolvable directive replaced by data from
// rec and the theme stylesheet injected.
func (p *Processor) Process(tpl string, rec *record.Enriched) string {
	if rec == nil {
		rec = record.NewEnriched()
	}
	out := substituteFields(tpl, rec)
	out = resolveConditionals(out, rec)
	out = resolveEach(out, rec)
	out = substituteStyleTokens(out, rec)
	out = p.substitutePalette(out, rec)
	out = p.injectStylesheet(out, rec)

	if left := Unresolved(out); len(left) > 0 {
		p.logger.Debug("unresolved template tokens",
			logging.String("theme", rec.Theme),
			logging.Strings("tokens", left),
		)
	}
	return out
}

// substituteFields replaces {{key}} for every record field in one scan.
// Substituted text is never rescanned.
func substituteFields(tpl string, rec *record.Enriched) string {
	return fieldToken.ReplaceAllStringFunc(tpl, func(token string) string {
		key := fieldToken.FindStringSubmatch(token)[1]
		value, ok := rec.Get(key)
		if !ok {
			return token
		}
		return value.String()
	})
}

// resolveConditionals makes one scan. An opener pairs with the first closer
// after it, so markers left over from nested blocks stay in the output.
func resolveConditionals(tpl string, rec *record.Enriched) string {
	return ifBlock.ReplaceAllStringFunc(tpl, func(block string) string {
		m := ifBlock.FindStringSubmatch(block)
		if truthy(rec, m[1]) {
			return m[2]
		}
		return ""
	})
}

// truthy treats missing keys as false. Style selectors participate so
// templates can test e.g. {{#if animationStyle}}, where "none" is false.
func truthy(rec *record.Enriched, key string) bool {
	if value, ok := rec.Get(key); ok {
		return value.Truthy()
	}
	switch key {
	case record.FieldTheme:
		return record.String(rec.Theme).Truthy()
	case record.FieldFontStyle:
		return record.String(rec.FontStyle).Truthy()
	case record.FieldAnimationStyle:
		return record.String(rec.AnimationStyle).Truthy()
	}
	return false
}

func resolveEach(tpl string, rec *record.Enriched) string {
	return eachBlock.ReplaceAllStringFunc(tpl, func(block string) string {
		m := eachBlock.FindStringSubmatch(block)
		value, ok := rec.Get(m[1])
		if !ok {
			return ""
		}
		items := value.Elements()
		var b strings.Builder
		for i, item := range items {
			b.WriteString(expandItem(m[2], item, i, len(items)))
		}
		return b.String()
	})
}

func expandItem(body string, item record.Item, index, total int) string {
	return itemToken.ReplaceAllStringFunc(body, func(token string) string {
		key := itemToken.FindStringSubmatch(token)[1]
		switch key {
		case "this":
			return item.String()
		case "@index":
			return strconv.Itoa(index)
		case "@first":
			return strconv.FormatBool(index == 0)
		case "@last":
			return strconv.FormatBool(index == total-1)
		}
		if value, ok := item.Get(key); ok {
			return value
		}
		return token
	})
}

// substituteStyleTokens maps the selectors to their CSS class names. An
// empty selector leaves its token in place.
func substituteStyleTokens(tpl string, rec *record.Enriched) string {
	pairs := make([]string, 0, 8)
	add := func(token, prefix, value string) {
		if value != "" {
			pairs = append(pairs, token, prefix+value)
		}
	}
	add("{{theme}}", "theme-", rec.Theme)
	add("{{fontStyle}}", "font-", rec.FontStyle)
	add("{{animationStyle}}", "animation-", rec.AnimationStyle)
	pairs = append(pairs, "{{backgroundImageStyle}}", BackgroundImageStyle(rec.BackgroundImage))
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// BackgroundImageStyle renders a CSS declaration for a vetted image URL, or
// "" when there is none.
func BackgroundImageStyle(url string) string {
	if url == "" {
		return ""
	}
	return "background-image: url('" + strings.ReplaceAll(url, "&", "&amp;") + "');"
}

func (p *Processor) substitutePalette(tpl string, rec *record.Enriched) string {
	return paletteToken.ReplaceAllStringFunc(tpl, func(token string) string {
		m := paletteToken.FindStringSubmatch(token)
		value, ok := p.themes.ResolvePlaceholder(theme.Kind(m[1]), m[2], rec.Theme)
		if !ok {
			return token
		}
		return value
	})
}

func (p *Processor) injectStylesheet(tpl string, rec *record.Enriched) string {
	vars := rec.Variables
	if len(vars) == 0 {
		vars = p.themes.Variables(rec.Theme)
	}
	block := Stylesheet(vars)

	if loc := styleBlock.FindStringIndex(tpl); loc != nil {
		return tpl[:loc[0]] + block + tpl[loc[1]:]
	}
	if loc := headClose.FindStringIndex(tpl); loc != nil {
		return tpl[:loc[0]] + block + tpl[loc[0]:]
	}
	return tpl + block
}

// Stylesheet wraps the :root variable block in the tagged style element.
func Stylesheet(vars map[string]string) string {
	return `<style id="` + StyleID + `">` + "\n" + theme.Stylesheet(vars) + "\n</style>\n"
}

// Unresolved lists the directive tokens left in a processed document, in
// order of first appearance.
func Unresolved(html string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, token := range anyToken.FindAllString(html, -1) {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
