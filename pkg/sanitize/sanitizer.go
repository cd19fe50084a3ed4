package sanitize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/theme"
)

const (
	shortTitleLength   = 60
	shortExcerptLength = 120

	maxTitleLength   = 200
	maxExcerptLength = 500
	maxLabelLength   = 100
)

// FontStyles lists the accepted fontStyle values.
var FontStyles = []string{"modern", "classic", "bold", "elegant", "minimal"}

// AnimationStyles lists the accepted animationStyle values.
var AnimationStyles = []string{"none", "fade", "slide", "zoom", "pulse"}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// VariableSource resolves theme names to CSS variable maps.
type VariableSource interface {
	Has(name string) bool
	Variables(name string) map[string]string
	DefaultName() string
}

// Defaults holds the values used for absent fields.
type Defaults struct {
	Title          string
	Excerpt        string
	Source         string
	Author         string
	Category       string
	FontStyle      string
	AnimationStyle string
}

// DefaultValues returns the stock defaults.
func DefaultValues() Defaults {
	return Defaults{
		Title:          "Título de la noticia",
		Excerpt:        "Descripción de la noticia",
		Source:         "Fuente",
		Author:         "Redacción",
		Category:       "general",
		FontStyle:      "modern",
		AnimationStyle: "none",
	}
}

// Option customises a Sanitizer.
type Option func(*Sanitizer)

// WithLogger reports warnings through logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Sanitizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithThemes sets the theme source used to validate names and resolve
// variables.
func WithThemes(themes VariableSource) Option {
	return func(s *Sanitizer) {
		if themes != nil {
			s.themes = themes
		}
	}
}

// WithClock overrides the time source used for the default date.
func WithClock(now func() time.Time) Option {
	return func(s *Sanitizer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaults replaces the default field values. Empty entries keep the
// stock value.
func WithDefaults(d Defaults) Option {
	return func(s *Sanitizer) {
		s.defaults = mergeDefaults(s.defaults, d)
	}
}

// Sanitizer escapes, validates and enriches raw records.
type Sanitizer struct {
	themes   VariableSource
	logger   logging.Logger
	now      func() time.Time
	defaults Defaults
}

// New builds a Sanitizer. Without WithThemes it uses a registry holding the
// stock themes.
func New(options ...Option) *Sanitizer {
	s := &Sanitizer{
		logger:   logging.NewNop(),
		now:      time.Now,
		defaults: DefaultValues(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.themes == nil {
		s.themes = theme.NewRegistry(theme.WithLogger(s.logger))
	}
	return s
}

// Sanitize returns a best-effort enriched record. It never fails; warnings
// are attached to the record and logged.
func (s *Sanitizer) Sanitize(raw record.Raw) *record.Enriched {
	rec := s.build(raw)
	for _, w := range rec.Warnings {
		s.logger.Warn("record data shape warning",
			logging.String("field", w.Field),
			logging.String("detail", w.Message),
		)
	}
	return rec
}

// Validate reports soft problems with raw without logging them.
func (s *Sanitizer) Validate(raw record.Raw) []record.Warning {
	return s.build(raw).Warnings
}

func (s *Sanitizer) build(raw record.Raw) *record.Enriched {
	rec := record.NewEnriched()

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !record.IsInputField(key) {
			rec.Warn(key, "unknown field ignored")
		}
	}

	title := s.text(rec, raw, record.FieldTitle, s.defaults.Title, maxTitleLength)
	excerpt := s.text(rec, raw, record.FieldExcerpt, s.defaults.Excerpt, maxExcerptLength)
	source := s.text(rec, raw, record.FieldSource, s.defaults.Source, maxLabelLength)
	author := s.text(rec, raw, record.FieldAuthor, s.defaults.Author, maxLabelLength)
	category := s.text(rec, raw, record.FieldCategory, s.defaults.Category, maxLabelLength)
	date := s.date(rec, raw)
	background := s.background(rec, raw)
	tags := s.tags(rec, raw)

	rec.Theme = s.theme(rec, raw)
	rec.FontStyle = s.choice(rec, raw, record.FieldFontStyle, FontStyles, s.defaults.FontStyle)
	rec.AnimationStyle = s.choice(rec, raw, record.FieldAnimationStyle, AnimationStyles, s.defaults.AnimationStyle)
	rec.BackgroundImage = background
	rec.Tags = tags
	rec.Variables = s.themes.Variables(rec.Theme)

	words := WordCount(title) + WordCount(excerpt)
	hashtags := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag.Slug != "" {
			hashtags = append(hashtags, "#"+tag.Slug)
		}
	}

	rec.Set(record.FieldTitle, record.String(EscapeHTML(title)))
	rec.Set(record.FieldExcerpt, record.String(EscapeHTML(excerpt)))
	rec.Set(record.FieldSource, record.String(EscapeHTML(source)))
	rec.Set(record.FieldAuthor, record.String(EscapeHTML(author)))
	rec.Set(record.FieldCategory, record.String(EscapeHTML(category)))
	rec.Set(record.FieldDate, record.Date(date))
	rec.Set(record.FieldBackgroundImage, record.String(strings.ReplaceAll(background, "&", "&amp;")))
	rec.Set(record.FieldTags, record.TagItems(tags))
	rec.Set(record.FieldShortTitle, record.String(EscapeHTML(Truncate(title, shortTitleLength))))
	rec.Set(record.FieldShortExcerpt, record.String(EscapeHTML(Truncate(excerpt, shortExcerptLength))))
	rec.Set(record.FieldCategoryIcon, record.String(CategoryIcon(category)))
	rec.Set(record.FieldCategoryLabel, record.String(EscapeHTML(CategoryLabel(category))))
	rec.Set(record.FieldReadingTime, record.String(ReadingTime(words)))
	rec.Set(record.FieldWordCount, record.String(strconv.Itoa(words)))
	rec.Set(record.FieldPlainTitle, record.String(PlainText(title)))
	rec.Set(record.FieldPlainExcerpt, record.String(PlainText(excerpt)))
	rec.Set(record.FieldHashtags, record.String(strings.Join(hashtags, " ")))
	rec.Set(record.FieldTagCount, record.String(strconv.Itoa(len(tags))))
	rec.Set(record.FieldISODate, record.String(date.Format("2006-01-02")))
	return rec
}

// text coerces a free-text field to a normalised, length-capped string. The
// result is not escaped yet so derived fields can be computed from it.
func (s *Sanitizer) text(rec *record.Enriched, raw record.Raw, key, fallback string, max int) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return fallback
	}

	var text string
	switch v := value.(type) {
	case string:
		text = v
	case fmt.Stringer:
		text = v.String()
	case []string:
		rec.Warn(key, "expected text, got a list")
		text = strings.Join(v, " ")
	case []any:
		rec.Warn(key, "expected text, got a list")
		parts := make([]string, 0, len(v))
		for _, entry := range v {
			parts = append(parts, fmt.Sprint(entry))
		}
		text = strings.Join(parts, " ")
	default:
		rec.Warn(key, fmt.Sprintf("expected text, got %T", value))
		text = fmt.Sprint(v)
	}

	text = normalizeSpace(text)
	if text == "" {
		return fallback
	}
	if len([]rune(text)) > max {
		rec.Warn(key, fmt.Sprintf("longer than %d characters, truncated", max))
		text = Truncate(text, max)
	}
	return text
}

func (s *Sanitizer) date(rec *record.Enriched, raw record.Raw) time.Time {
	value, ok := raw[record.FieldDate]
	if !ok || value == nil {
		return s.now()
	}
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			rec.Warn(record.FieldDate, "zero date, using current date")
			return s.now()
		}
		return v
	case *time.Time:
		if v == nil || v.IsZero() {
			rec.Warn(record.FieldDate, "zero date, using current date")
			return s.now()
		}
		return *v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return s.now()
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed
			}
		}
		rec.Warn(record.FieldDate, fmt.Sprintf("unrecognised date %q, using current date", trimmed))
		return s.now()
	}
	rec.Warn(record.FieldDate, fmt.Sprintf("expected date, got %T", value))
	return s.now()
}

func (s *Sanitizer) background(rec *record.Enriched, raw record.Raw) string {
	value, ok := raw[record.FieldBackgroundImage]
	if !ok || value == nil {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		rec.Warn(record.FieldBackgroundImage, fmt.Sprintf("expected URL string, got %T", value))
		return ""
	}
	safe, err := SafeURL(text)
	if err != nil {
		rec.Warn(record.FieldBackgroundImage, "rejected: "+err.Error())
		return ""
	}
	return safe
}

func (s *Sanitizer) tags(rec *record.Enriched, raw record.Raw) []record.Tag {
	value, ok := raw[record.FieldTags]
	if !ok || value == nil {
		return []record.Tag{}
	}

	var names []string
	switch v := value.(type) {
	case string:
		names = SplitTags(v)
	case []string:
		for _, entry := range v {
			names = append(names, SplitTags(entry)...)
		}
	case []any:
		for _, entry := range v {
			text, ok := entry.(string)
			if !ok {
				rec.Warn(record.FieldTags, fmt.Sprintf("ignored non-text tag %T", entry))
				continue
			}
			names = append(names, SplitTags(text)...)
		}
	default:
		rec.Warn(record.FieldTags, fmt.Sprintf("expected comma separated text or list, got %T", value))
		return []record.Tag{}
	}

	tags, dropped := BuildTags(names)
	if dropped > 0 {
		rec.Warn(record.FieldTags, fmt.Sprintf("%d tags dropped, at most %d are kept", dropped, maxTags))
	}
	return tags
}

func (s *Sanitizer) theme(rec *record.Enriched, raw record.Raw) string {
	fallback := s.themes.DefaultName()
	name, present := s.selector(rec, raw, record.FieldTheme)
	if !present {
		return fallback
	}
	if !s.themes.Has(name) {
		rec.Warn(record.FieldTheme, fmt.Sprintf("unknown theme %q, using %q", name, fallback))
		return fallback
	}
	return name
}

func (s *Sanitizer) choice(rec *record.Enriched, raw record.Raw, key string, allowed []string, fallback string) string {
	name, present := s.selector(rec, raw, key)
	if !present {
		return fallback
	}
	for _, option := range allowed {
		if option == name {
			return name
		}
	}
	rec.Warn(key, fmt.Sprintf("unsupported value %q, using %q", name, fallback))
	return fallback
}

func (s *Sanitizer) selector(rec *record.Enriched, raw record.Raw, key string) (string, bool) {
	value, ok := raw[key]
	if !ok || value == nil {
		return "", false
	}
	text, ok := value.(string)
	if !ok {
		rec.Warn(key, fmt.Sprintf("expected text, got %T", value))
		return "", false
	}
	name := strings.ToLower(strings.TrimSpace(text))
	return name, name != ""
}

func mergeDefaults(base, override Defaults) Defaults {
	pick := func(a, b string) string {
		if strings.TrimSpace(b) != "" {
			return b
		}
		return a
	}
	return Defaults{
		Title:          pick(base.Title, override.Title),
		Excerpt:        pick(base.Excerpt, override.Excerpt),
		Source:         pick(base.Source, override.Source),
		Author:         pick(base.Author, override.Author),
		Category:       pick(base.Category, override.Category),
		FontStyle:      pick(base.FontStyle, override.FontStyle),
		AnimationStyle: pick(base.AnimationStyle, override.AnimationStyle),
	}
}
