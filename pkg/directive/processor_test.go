package directive

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/sanitize"
	"github.com/goliatone/go-cardgen/pkg/theme"
)

func newRecord(fields ...record.Field) *record.Enriched {
	rec := record.NewEnriched()
	for _, f := range fields {
		rec.Set(f.Key, f.Value)
	}
	rec.Theme = "news"
	rec.FontStyle = "bold"
	rec.AnimationStyle = "none"
	return rec
}

func field(key string, value record.Value) record.Field {
	return record.Field{Key: key, Value: value}
}

func tagRecord(names ...string) *record.Enriched {
	tags, _ := sanitize.BuildTags(names)
	return newRecord(field(record.FieldTags, record.TagItems(tags)))
}

// body strips the injected stylesheet so assertions can focus on markup.
func body(html string) string {
	return styleBlock.ReplaceAllString(html, "")
}

func TestFieldSubstitution(t *testing.T) {
	p := New()
	rec := newRecord(
		field(record.FieldTitle, record.String("Hola")),
		field(record.FieldSource, record.String("Agencia")),
	)
	got := body(p.Process("<h1>{{title}}</h1><p>{{ source }}</p><i>{{unknown}}</i>", rec))
	want := "<h1>Hola</h1><p>Agencia</p><i>{{unknown}}</i>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSubstitutedValuesAreNotRescanned(t *testing.T) {
	rec := newRecord(
		field(record.FieldTitle, record.String("{{excerpt}}")),
		field(record.FieldExcerpt, record.String("secret")),
	)
	got := body(New().Process("{{title}}", rec))
	if got != "{{excerpt}}" {
		t.Fatalf("got %q, value was expanded again", got)
	}
}

func TestConditionals(t *testing.T) {
	cases := []struct {
		name  string
		value record.Value
		keep  bool
	}{
		{name: "text", value: record.String("x"), keep: true},
		{name: "empty", value: record.String("")},
		{name: "none", value: record.String("none")},
		{name: "false", value: record.Bool(false)},
		{name: "true", value: record.Bool(true), keep: true},
		{name: "empty list", value: record.List()},
		{name: "list", value: record.List("a"), keep: true},
		{name: "date", value: record.Date(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)), keep: true},
	}
	p := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := newRecord(field(record.FieldCategory, tc.value))
			got := body(p.Process("[{{#if category}}kept{{/if}}]", rec))
			want := "[]"
			if tc.keep {
				want = "[kept]"
			}
			if got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		})
	}

	t.Run("missing", func(t *testing.T) {
		got := body(p.Process("[{{#if nothing}}kept{{/if}}]", newRecord()))
		if got != "[]" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("style selector", func(t *testing.T) {
		got := body(p.Process("{{#if animationStyle}}anim{{/if}}{{#if fontStyle}}font{{/if}}", newRecord()))
		if got != "font" {
			t.Fatalf("got %q", got)
		}
	})
}

func TestConditionalsPairWithFirstCloser(t *testing.T) {
	rec := newRecord(
		field(record.FieldTitle, record.String("t")),
		field(record.FieldExcerpt, record.String("")),
	)
	got := body(New().Process("{{#if excerpt}}A{{#if title}}B{{/if}}C{{/if}}", rec))
	if got != "C{{/if}}" {
		t.Fatalf("got %q", got)
	}
}

func TestNestedBlocksLeaveInnerMarkersVisible(t *testing.T) {
	rec := newRecord(
		field(record.FieldTitle, record.String("t")),
		field(record.FieldCategory, record.List("a", "b")),
	)
	p := New()

	cases := []struct {
		tpl  string
		want string
	}{
		{tpl: "{{#if title}}{{#if missing}}X{{/if}}Y{{/if}}", want: "{{#if missing}}XY{{/if}}"},
		{tpl: "{{#if title}}A{{#if title}}B{{/if}}C{{/if}}", want: "A{{#if title}}BC{{/if}}"},
		{tpl: "{{#each category}}<{{#each category}}>{{/each}}|{{/each}}", want: "<{{#each category}}><{{#each category}}>|{{/each}}"},
	}
	for _, tc := range cases {
		if got := body(p.Process(tc.tpl, rec)); got != tc.want {
			t.Fatalf("Process(%q) = %q, want %q", tc.tpl, got, tc.want)
		}
	}
}

func TestEachOverTags(t *testing.T) {
	rec := tagRecord("Política", "Economía", "Salud")
	tpl := `{{#each tags}}<li data-i="{{@index}}" data-first="{{@first}}" data-last="{{@last}}" style="color: {{color}}">#{{slug}} {{name}} {{missing}}</li>{{/each}}`
	got := body(New().Process(tpl, rec))

	for i, want := range []string{
		`<li data-i="0" data-first="true" data-last="false" style="color: ` + sanitize.TagColor("Política") + `">#politica Política {{missing}}</li>`,
		`<li data-i="1" data-first="false" data-last="false"`,
		`<li data-i="2" data-first="false" data-last="true"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("item %d missing %q in\n%s", i, want, got)
		}
	}
	if strings.Count(got, "<li") != 3 {
		t.Fatalf("expected 3 items:\n%s", got)
	}
}

func TestEachOverPrimitivesAndEmptyLists(t *testing.T) {
	rec := newRecord(
		field(record.FieldCategory, record.List("a", "b")),
		field(record.FieldTags, record.Items()),
	)
	got := body(New().Process("{{#each category}}<{{this}}>{{/each}}|{{#each tags}}x{{/each}}|{{#each nothing}}y{{/each}}", rec))
	if got != "<a><b>||" {
		t.Fatalf("got %q", got)
	}
}

func TestStyleTokens(t *testing.T) {
	rec := newRecord()
	rec.BackgroundImage = "https://cdn.example.com/a.jpg?w=1&h=2"
	got := body(New().Process(`<div class="{{theme}} {{fontStyle}} {{animationStyle}}" style="{{backgroundImageStyle}}">`, rec))
	want := `<div class="theme-news font-bold animation-none" style="background-image: url('https://cdn.example.com/a.jpg?w=1&amp;h=2');">`
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}

	rec.BackgroundImage = ""
	if got := body(New().Process(`style="{{backgroundImageStyle}}"`, rec)); got != `style=""` {
		t.Fatalf("got %q", got)
	}
}

func TestStyleTokensUseClassPrefixes(t *testing.T) {
	rec := newRecord()
	rec.AnimationStyle = "fade"
	got := body(New().Process("{{theme}}|{{fontStyle}}|{{animationStyle}}", rec))
	if want := "theme-news|font-bold|animation-fade"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPaletteTokens(t *testing.T) {
	got := body(New().Process("{{theme.color.primary}} {{theme.shadow.md}} {{theme.color.nope}}", newRecord()))
	reg := theme.NewRegistry()
	shadow, _ := reg.ResolvePlaceholder(theme.KindShadow, "md", "news")
	want := "#ff416c " + shadow + " {{theme.color.nope}}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStylesheetInjection(t *testing.T) {
	p := New()
	rec := newRecord()

	withHead := p.Process("<html><HEAD><title>x</title></HEAD><body></body></html>", rec)
	idx := strings.Index(withHead, `<style id="cardgen-theme">`)
	if idx < 0 || idx > strings.Index(withHead, "</HEAD>") {
		t.Fatalf("stylesheet not injected before </HEAD>:\n%s", withHead)
	}
	if !strings.Contains(withHead, "--color-primary: #ff416c;") {
		t.Fatalf("stylesheet missing theme variables:\n%s", withHead)
	}

	bare := p.Process("<div></div>", rec)
	if !strings.HasPrefix(bare, "<div></div><style id=\"cardgen-theme\">") {
		t.Fatalf("stylesheet not appended:\n%s", bare)
	}
}

func TestStylesheetIsReplacedForAnotherTheme(t *testing.T) {
	p := New()
	news := newRecord()
	first := p.Process("<head></head>", news)

	dark := newRecord()
	dark.Theme = "dark"
	second := p.Process(first, dark)
	if strings.Count(second, `<style id="cardgen-theme">`) != 1 {
		t.Fatalf("expected a single stylesheet:\n%s", second)
	}
	if strings.Contains(second, "#ff416c") {
		t.Fatalf("previous theme variables survived:\n%s", second)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	s := sanitize.New(sanitize.WithClock(func() time.Time {
		return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	}))
	rec := s.Sanitize(record.Raw{
		"title":           "Hola <b>Mundo</b> {{excerpt}}",
		"tags":            "Política, Economía",
		"theme":           "news",
		"backgroundImage": "https://example.com/a.jpg?q={{title}}",
	})
	templates := []string{
		"<html><head></head><body>{{title}} {{unknown}}</body></html>",
		"{{#if title}}A{{/if}}{{#if x}}B{{/if}}",
		"<ul>{{#each tags}}<li>{{name}}</li>{{/each}}</ul>",
		`<div style="{{backgroundImageStyle}}">{{theme.color.accent}} {{theme.gradient.primary}}</div>`,
		"{{#each tags}}{{this}}",
	}

	p := New()
	for _, tpl := range templates {
		once := p.Process(tpl, rec)
		twice := p.Process(once, rec)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("second pass changed %q (-once +twice):\n%s", tpl, diff)
		}
	}
}

func TestEndToEnd(t *testing.T) {
	s := sanitize.New(sanitize.WithClock(func() time.Time {
		return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	}))
	rec := s.Sanitize(record.Raw{
		"title": "Hola <b>Mundo</b>",
		"tags":  "Política, Economía",
		"theme": "news",
	})

	tpl := `<html><head></head><body><h1>{{title}}</h1><p>{{hashtags}}</p>` +
		`{{#if tags}}<ul>{{#each tags}}<li>{{slug}}</li>{{/each}}</ul>{{/if}}` +
		`<b style="color: {{theme.color.primary}}">{{plainTitle}}</b></body></html>`
	got := New().Process(tpl, rec)

	for _, want := range []string{
		"<h1>Hola &lt;b&gt;Mundo&lt;&#x2F;b&gt;</h1>",
		"<p>#politica #economia</p>",
		"<ul><li>politica</li><li>economia</li></ul>",
		`<b style="color: #ff416c">Hola Mundo</b>`,
		`<style id="cardgen-theme">`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if left := Unresolved(got); len(left) != 0 {
		t.Fatalf("unexpected unresolved tokens %v", left)
	}
}

func TestUnresolved(t *testing.T) {
	got := Unresolved("{{a}} x {{#if b}} {{a}} {{theme.color.z}}")
	want := []string{"{{a}}", "{{#if b}}", "{{theme.color.z}}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
