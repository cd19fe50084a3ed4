package sanitize

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/record"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func newTestSanitizer() *Sanitizer {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func TestEscapeHTMLCoversMarkupAndDirectiveCharacters(t *testing.T) {
	got := EscapeHTML(`<a href="x">'&'</a>{{title}}`)
	for _, forbidden := range []string{"<", ">", `"`, "'", "{", "}"} {
		if strings.Contains(got, forbidden) {
			t.Fatalf("escaped output %q still contains %q", got, forbidden)
		}
	}
	want := "&lt;a href=&quot;x&quot;&gt;&#x27;&amp;&#x27;&lt;&#x2F;a&gt;&#123;&#123;title&#125;&#125;"
	if got != want {
		t.Fatalf("EscapeHTML mismatch\nwant %q\n got %q", want, got)
	}
}

func TestPlainTextStripsMarkup(t *testing.T) {
	if got := PlainText("  Hola <b>Mundo</b> <script>alert(1)</script> "); got != "Hola Mundo" {
		t.Fatalf("PlainText = %q", got)
	}
	if got := PlainText("Tom &amp; Jerry"); got != "Tom &amp; Jerry" {
		t.Fatalf("PlainText entity handling = %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: "", want: ""},
		{name: "https", input: "https://cdn.example.com/a.jpg", want: "https://cdn.example.com/a.jpg"},
		{name: "javascript", input: "javascript:alert(1)", wantErr: true},
		{name: "obfuscated javascript", input: " Java\tScript:alert(1)", wantErr: true},
		{name: "data", input: "data:image/png;base64,AAAA", wantErr: true},
		{name: "vbscript", input: "vbscript:msgbox", wantErr: true},
		{name: "file", input: "file:///etc/passwd", wantErr: true},
		{name: "relative", input: "/images/a.jpg", wantErr: true},
		{name: "ftp", input: "ftp://example.com/a.jpg", wantErr: true},
		{name: "directive in query", input: "https://example.com/a.jpg?q={{title}}", want: "https://example.com/a.jpg?q=%7B%7Btitle%7D%7D"},
		{name: "quote breakout", input: "https://example.com/a.jpg?x=');", want: "https://example.com/a.jpg?x=%27%29;"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SafeURL(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tc.input, got)
				}
				if got != "" {
					t.Fatalf("rejected URL should be empty, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("SafeURL(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("corto", 10); got != "corto" {
		t.Fatalf("short input changed: %q", got)
	}
	got := Truncate("El gobierno anuncia nuevas medidas económicas", 20)
	if got != "El gobierno anuncia..." {
		t.Fatalf("Truncate = %q", got)
	}
	if strings.Count(got, "...") != 1 {
		t.Fatalf("expected a single ellipsis in %q", got)
	}
	if got := Truncate("Hola, mundo entero", 6); got != "Hola..." {
		t.Fatalf("trailing punctuation not trimmed: %q", got)
	}
}

func TestTruncateKeepsLongFirstWordWhole(t *testing.T) {
	cases := map[string]struct {
		in   string
		max  int
		want string
	}{
		"long first word":     {in: "Anticonstitucionalmente dicho", max: 10, want: "Anticonstitucionalmente..."},
		"single word":         {in: "Anticonstitucionalmente", max: 10, want: "Anticonstitucionalmente"},
		"boundary at the cut": {in: "Hola mundo", max: 4, want: "Hola..."},
		"punctuated word":     {in: "Electroencefalograma, hoy", max: 5, want: "Electroencefalograma..."},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.max); got != tc.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestReadingTime(t *testing.T) {
	cases := map[int]string{0: "1 min", 1: "1 min", 200: "1 min", 201: "2 min", 950: "5 min"}
	for words, want := range cases {
		if got := ReadingTime(words); got != want {
			t.Fatalf("ReadingTime(%d) = %q, want %q", words, got, want)
		}
	}
}

func TestBuildTags(t *testing.T) {
	tags, dropped := BuildTags([]string{"Política", "Economía", "a", "b", "c", "d", "e"})
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if len(tags) != 5 {
		t.Fatalf("len(tags) = %d, want 5", len(tags))
	}
	if tags[0].Slug != "politica" || tags[1].Slug != "economia" {
		t.Fatalf("unexpected slugs %q %q", tags[0].Slug, tags[1].Slug)
	}
	if tags[0].Name != "Política" {
		t.Fatalf("display name changed: %q", tags[0].Name)
	}

	again, _ := BuildTags([]string{"POLÍTICA"})
	if TagColor("Política") != TagColor("política") {
		t.Fatalf("colour should ignore case")
	}
	found := false
	for _, c := range TagPalette {
		if c == again[0].Color {
			found = true
		}
	}
	if !found {
		t.Fatalf("colour %q not from palette", again[0].Color)
	}

	long, _ := BuildTags([]string{strings.Repeat("x", 40)})
	if n := len([]rune(long[0].Name)); n != maxTagLength {
		t.Fatalf("tag length = %d, want %d", n, maxTagLength)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Política":          "politica",
		"Ciencia y Salud":   "ciencia-y-salud",
		"  ¡Última hora!  ": "ultima-hora",
		"Año 2026":          "ano-2026",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCategoryIconAndLabel(t *testing.T) {
	if got := CategoryIcon("Política"); got == CategoryIcon("unknown-thing") {
		t.Fatalf("politics should have its own icon, got %q", got)
	}
	if got := CategoryIcon("nothing"); got != "📰" {
		t.Fatalf("fallback icon = %q", got)
	}
	if got := CategoryLabel("economía global"); got != "Economía Global" {
		t.Fatalf("CategoryLabel = %q", got)
	}
}

func TestSanitizeFillsDefaults(t *testing.T) {
	rec := newTestSanitizer().Sanitize(record.Raw{})

	checks := map[string]string{
		record.FieldTitle:        "Título de la noticia",
		record.FieldExcerpt:      "Descripción de la noticia",
		record.FieldSource:       "Fuente",
		record.FieldAuthor:       "Redacción",
		record.FieldCategory:     "general",
		record.FieldDate:         "19 de octubre de 2026",
		record.FieldISODate:      "2026-10-19",
		record.FieldTagCount:     "0",
		record.FieldHashtags:     "",
		record.FieldReadingTime:  "1 min",
		record.FieldWordCount:    "8",
		record.FieldCategoryIcon: "📰",
	}
	for key, want := range checks {
		if got := rec.Text(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if rec.Theme != "default" || rec.FontStyle != "modern" || rec.AnimationStyle != "none" {
		t.Fatalf("unexpected selectors %q %q %q", rec.Theme, rec.FontStyle, rec.AnimationStyle)
	}
	if len(rec.Variables) == 0 {
		t.Fatalf("expected theme variables to be attached")
	}
	if len(rec.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", rec.Warnings)
	}
}

func TestSanitizeFieldOrder(t *testing.T) {
	rec := newTestSanitizer().Sanitize(record.Raw{"title": "x"})
	want := []string{
		"title", "excerpt", "source", "author", "category", "date",
		"backgroundImage", "tags", "shortTitle", "shortExcerpt",
		"categoryIcon", "categoryLabel", "readingTime", "wordCount",
		"plainTitle", "plainExcerpt", "hashtags", "tagCount", "isoDate",
	}
	if diff := cmp.Diff(want, rec.Keys()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeEscapesEveryTextField(t *testing.T) {
	hostile := `<img src=x onerror="alert('x')">{{title}}`
	rec := newTestSanitizer().Sanitize(record.Raw{
		"title":    hostile,
		"excerpt":  hostile,
		"source":   hostile,
		"author":   hostile,
		"category": hostile,
		"tags":     []any{hostile},
	})

	for _, field := range rec.Fields() {
		text := field.Value.String()
		for _, forbidden := range []string{"<", ">", `"`, "'", "{{"} {
			if strings.Contains(text, forbidden) {
				t.Errorf("field %s contains %q: %q", field.Key, forbidden, text)
			}
		}
	}
}

func TestSanitizeZeroDateFallsBackToNow(t *testing.T) {
	var missing *time.Time
	for name, value := range map[string]any{
		"zero time":   time.Time{},
		"zero ptr":    &time.Time{},
		"nil pointer": missing,
	} {
		t.Run(name, func(t *testing.T) {
			rec := newTestSanitizer().Sanitize(record.Raw{"date": value})
			if got := rec.Text(record.FieldISODate); got != "2026-10-19" {
				t.Fatalf("isoDate = %q", got)
			}
			want := []record.Warning{{Field: record.FieldDate, Message: "zero date, using current date"}}
			if diff := cmp.Diff(want, rec.Warnings); diff != "" {
				t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
			}
		})
	}

	when := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	rec := newTestSanitizer().Sanitize(record.Raw{"date": &when})
	if got := rec.Text(record.FieldISODate); got != "2025-01-02" || len(rec.Warnings) != 0 {
		t.Fatalf("isoDate = %q, warnings %v", got, rec.Warnings)
	}
}

func TestSanitizeDerivedFields(t *testing.T) {
	rec := newTestSanitizer().Sanitize(record.Raw{
		"title":    "Hola <b>Mundo</b>",
		"excerpt":  "Una nota breve",
		"category": "Economía",
		"tags":     "Política, Economía",
		"date":     "2026-03-05",
	})

	if got := rec.Text(record.FieldTitle); got != "Hola &lt;b&gt;Mundo&lt;&#x2F;b&gt;" {
		t.Fatalf("title = %q", got)
	}
	if got := rec.Text(record.FieldPlainTitle); got != "Hola Mundo" {
		t.Fatalf("plainTitle = %q", got)
	}
	if got := rec.Text(record.FieldHashtags); got != "#politica #economia" {
		t.Fatalf("hashtags = %q", got)
	}
	if got := rec.Text(record.FieldTagCount); got != "2" {
		t.Fatalf("tagCount = %q", got)
	}
	if got := rec.Text(record.FieldCategoryLabel); got != "Economía" {
		t.Fatalf("categoryLabel = %q", got)
	}
	if got := rec.Text(record.FieldISODate); got != "2026-03-05" {
		t.Fatalf("isoDate = %q", got)
	}
	if got := rec.Text(record.FieldDate); got != "5 de marzo de 2026" {
		t.Fatalf("date = %q", got)
	}
	tags, _ := rec.Get(record.FieldTags)
	if tags.Kind() != record.KindItems || tags.Len() != 2 {
		t.Fatalf("tags value = %v (%s)", tags, tags.Kind())
	}
}

func TestSanitizeWarnings(t *testing.T) {
	warnings := newTestSanitizer().Validate(record.Raw{
		"title":           42.0,
		"backgroundImage": "javascript:alert(1)",
		"theme":           "neon",
		"fontStyle":       "comic",
		"animationStyle":  "spin",
		"date":            "yesterday",
		"tags":            "a,b,c,d,e,f",
		"color":           "red",
	})

	fields := make([]string, 0, len(warnings))
	for _, w := range warnings {
		fields = append(fields, w.Field)
	}
	want := []string{"color", "title", "date", "backgroundImage", "tags", "theme", "fontStyle", "animationStyle"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("warning fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeRejectedBackgroundIsEmpty(t *testing.T) {
	rec := newTestSanitizer().Sanitize(record.Raw{"backgroundImage": "javascript:alert(1)"})
	if rec.BackgroundImage != "" || rec.Text(record.FieldBackgroundImage) != "" {
		t.Fatalf("dangerous URL leaked: %q", rec.BackgroundImage)
	}

	rec = newTestSanitizer().Sanitize(record.Raw{"backgroundImage": "https://example.com/a.jpg?w=1&h=2"})
	if rec.BackgroundImage != "https://example.com/a.jpg?w=1&h=2" {
		t.Fatalf("BackgroundImage = %q", rec.BackgroundImage)
	}
	if got := rec.Text(record.FieldBackgroundImage); got != "https://example.com/a.jpg?w=1&amp;h=2" {
		t.Fatalf("backgroundImage field = %q", got)
	}
}

func TestSanitizeTruncatesLongTitle(t *testing.T) {
	long := strings.Repeat("palabra ", 40)
	rec := newTestSanitizer().Sanitize(record.Raw{"title": long})
	if n := len([]rune(rec.Text(record.FieldTitle))); n > maxTitleLength+len(ellipsis) {
		t.Fatalf("title length %d exceeds cap", n)
	}
	if len(rec.Warnings) != 1 || rec.Warnings[0].Field != record.FieldTitle {
		t.Fatalf("expected a title warning, got %v", rec.Warnings)
	}
	short := rec.Text(record.FieldShortTitle)
	if !strings.HasSuffix(short, "...") || len([]rune(short)) > shortTitleLength+len(ellipsis) {
		t.Fatalf("shortTitle = %q", short)
	}
}

func TestWithDefaultsOverridesOnlyNonEmpty(t *testing.T) {
	s := New(WithClock(func() time.Time { return fixedNow }), WithDefaults(Defaults{Source: "Agencia"}))
	rec := s.Sanitize(record.Raw{})
	if rec.Text(record.FieldSource) != "Agencia" {
		t.Fatalf("source default not overridden")
	}
	if rec.Text(record.FieldAuthor) != "Redacción" {
		t.Fatalf("author default lost")
	}
}
