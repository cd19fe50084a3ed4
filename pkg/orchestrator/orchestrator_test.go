package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	gotheme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/platform"
	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/templates"
	"github.com/goliatone/go-cardgen/pkg/testsupport"
)

var renderTime = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

const postTemplate = `<!DOCTYPE html>
<html><head><title>{{plainTitle}}</title></head>
<body class="{{fontStyle}}">
<h1 style="color: {{theme.color.primary}}">{{title}}</h1>
{{#if tags}}<ul>{{#each tags}}<li>#{{slug}}</li>{{/each}}</ul>{{/if}}
<footer>{{source}} · {{date}}</footer>
</body></html>`

func newStore(t *testing.T, files fstest.MapFS) *templates.Store {
	t.Helper()
	options := []templates.Option{}
	if files != nil {
		options = append(options, templates.WithFetcher(templates.FSFetcher{FS: files}))
	}
	store, err := templates.NewStore(options...)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func newOrchestrator(t *testing.T, options ...Option) *Orchestrator {
	t.Helper()
	store := newStore(t, fstest.MapFS{
		"templates/instagram/post.html": {Data: []byte(postTemplate)},
	})
	base := []Option{WithStore(store), WithClock(testsupport.FixedClock(renderTime))}
	return New(append(base, options...)...)
}

func TestRenderEndToEnd(t *testing.T) {
	orch := newOrchestrator(t)

	result, err := orch.Render(testsupport.Context(), Request{
		Platform: "instagram",
		Template: "post",
		Record: record.Raw{
			"title":  "Hola <b>Mundo</b>",
			"tags":   "Política, Economía",
			"theme":  "news",
			"source": "Agencia",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"<title>Hola Mundo</title>",
		`<h1 style="color: #ff416c">Hola &lt;b&gt;Mundo&lt;&#x2F;b&gt;</h1>`,
		"<ul><li>#politica</li><li>#economia</li></ul>",
		"<footer>Agencia · 19 de octubre de 2026</footer>",
		`<body class="font-modern">`,
		`<style id="cardgen-theme">`,
	} {
		if !strings.Contains(result.HTML, want) {
			t.Fatalf("output missing %q:\n%s", want, result.HTML)
		}
	}
	if len(result.Unresolved) != 0 {
		t.Fatalf("unexpected unresolved tokens %v", result.Unresolved)
	}

	rc, ok := orch.CurrentContext()
	if !ok {
		t.Fatalf("expected a current render context")
	}
	if rc.Platform != "instagram" || rc.Template != "post" || rc.Fallback {
		t.Fatalf("context = %+v", rc)
	}
	if rc.Size != (platform.Size{Width: 1080, Height: 1080}) {
		t.Fatalf("size = %+v", rc.Size)
	}
	if rc.Record.Theme != "news" {
		t.Fatalf("record theme = %q", rc.Record.Theme)
	}
	if got := rc.Filename(""); got != "instagram-post-hola-mundo-20261019-093000.png" {
		t.Fatalf("filename = %q", got)
	}
	if result.Context.Record != rc.Record || result.Context.RenderedAt != rc.RenderedAt {
		t.Fatalf("result context differs from current context")
	}
}

func TestRenderFixtureRecord(t *testing.T) {
	orch := newOrchestrator(t)
	raw := testsupport.LoadRecord(t, filepath.Join("testdata", "record.json"))

	result, err := orch.Render(testsupport.Context(), Request{Platform: "instagram", Template: "post", Record: raw})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"<title>Elecciones 2026</title>",
		`<body class="font-classic">`,
		"<ul><li>#elecciones</li><li>#votacion</li></ul>",
		"<footer>Diario · 3 de mayo de 2026</footer>",
	} {
		if !strings.Contains(result.HTML, want) {
			t.Fatalf("output missing %q:\n%s", want, result.HTML)
		}
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", result.Warnings)
	}
}

func TestRenderRejectsInvalidInput(t *testing.T) {
	orch := newOrchestrator(t)
	cases := []struct {
		req  Request
		want error
	}{
		{req: Request{Platform: "myspace", Template: "post"}, want: platform.ErrInvalidPlatform},
		{req: Request{Platform: "instagram", Template: "Post!"}, want: platform.ErrInvalidTemplateName},
	}
	for _, tc := range cases {
		_, err := orch.Render(context.Background(), tc.req)
		if !errors.Is(err, tc.want) {
			t.Fatalf("Render(%+v) error = %v, want %v", tc.req, err, tc.want)
		}
		var verr *platform.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *platform.ValidationError, got %T", err)
		}
	}
	if _, ok := orch.CurrentContext(); ok {
		t.Fatalf("failed renders must not set a context")
	}
}

func TestRenderRequiresContext(t *testing.T) {
	orch := newOrchestrator(t)
	//nolint:staticcheck // nil context is the case under test
	if _, err := orch.Render(nil, Request{Platform: "instagram", Template: "post"}); err == nil {
		t.Fatalf("expected error for nil context")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Render(ctx, Request{Platform: "instagram", Template: "post"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderFallsBackWhenTemplateMissing(t *testing.T) {
	orch := New(WithClock(testsupport.FixedClock(renderTime)))

	result, err := orch.Render(context.Background(), Request{
		Platform: "instagram",
		Template: "story",
		Record:   record.Raw{"title": "Último momento"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !result.Context.Fallback {
		t.Fatalf("expected fallback render")
	}
	for _, want := range []string{"1080px", "1920px", "Último momento", `class="card theme-default font-modern animation-none"`} {
		if !strings.Contains(result.HTML, want) {
			t.Fatalf("fallback output missing %q:\n%s", want, result.HTML)
		}
	}
	if orch.CacheStats().Entries != 0 {
		t.Fatalf("fallback must not be cached")
	}
}

func TestRenderLogsWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	orch := newOrchestrator(t, WithLogger(logging.Wrap(zap.New(core))))

	result, err := orch.Render(context.Background(), Request{
		Platform: "instagram",
		Template: "post",
		Record:   record.Raw{"theme": "neon", "fontStyle": "comic"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("warnings = %v", result.Warnings)
	}
	if n := logs.FilterMessage("record data shape warning").Len(); n != 2 {
		t.Fatalf("logged %d warnings, want 2", n)
	}
	if logs.FilterMessage("card rendered").Len() != 1 {
		t.Fatalf("expected a render log entry")
	}
}

func TestPlatformDimensions(t *testing.T) {
	orch := newOrchestrator(t)
	size, err := orch.PlatformDimensions("twitter", "post")
	if err != nil {
		t.Fatalf("dimensions: %v", err)
	}
	if size != (platform.Size{Width: 1200, Height: 675}) {
		t.Fatalf("size = %+v", size)
	}
	if _, err := orch.PlatformDimensions("orkut", "post"); !errors.Is(err, platform.ErrInvalidPlatform) {
		t.Fatalf("expected invalid platform, got %v", err)
	}
}

func TestCacheStatsAndClear(t *testing.T) {
	orch := newOrchestrator(t)
	if _, err := orch.Render(context.Background(), Request{Platform: "instagram", Template: "post"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	stats := orch.CacheStats()
	if diff := cmp.Diff([]string{"instagram:post"}, stats.Keys); diff != "" {
		t.Fatalf("cached keys mismatch:\n%s", diff)
	}
	orch.ClearCache()
	if orch.CacheStats().Entries != 0 {
		t.Fatalf("expected empty cache")
	}
}

func TestRenderAppliesThemeVariantTokens(t *testing.T) {
	selector := &stubThemeSelector{selection: &gotheme.Selection{
		Theme:   "news",
		Variant: "night",
		Manifest: &gotheme.Manifest{
			Name:   "news",
			Tokens: map[string]string{"color-primary": "#ff416c", "brand": "#123456"},
			Variants: map[string]gotheme.Variant{
				"night": {Tokens: map[string]string{"color-primary": "#111111"}},
			},
		},
	}}
	orch := newOrchestrator(t, WithThemeSelector(selector))

	result, err := orch.Render(context.Background(), Request{
		Platform: "instagram",
		Template: "post",
		Record:   record.Raw{"theme": "news"},
		Variant:  "night",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]selectorCall{{name: "news", variant: "night"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls mismatch:\n%s", diff)
	}
	for _, want := range []string{"--color-primary: #111111;", "--brand: #123456;", "--color-accent: "} {
		if !strings.Contains(result.HTML, want) {
			t.Fatalf("stylesheet missing %q", want)
		}
	}
}

func TestRenderIgnoresFailedThemeSelection(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("unknown theme")}
	orch := newOrchestrator(t, WithThemeSelector(selector))
	result, err := orch.Render(context.Background(), Request{Platform: "instagram", Template: "post"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(result.HTML, "--color-primary: #667eea;") {
		t.Fatalf("expected default theme variables when selection fails")
	}
}

func TestConcurrentRenders(t *testing.T) {
	orch := newOrchestrator(t)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := orch.Render(context.Background(), Request{Platform: "instagram", Template: "post"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("render: %v", err)
	}
}

func TestFilename(t *testing.T) {
	rec := record.NewEnriched()
	rec.Set(record.FieldPlainTitle, record.String("Tom &amp; Jerry: una historia muy larga que no cabe en el nombre del archivo"))
	rc := RenderContext{Platform: "twitter", Template: "post", Record: rec, RenderedAt: renderTime}

	got := rc.Filename(".jpg")
	want := "twitter-post-tom-jerry-una-historia-muy-larga-que-no-20261019-093000.jpg"
	if got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}

	bare := RenderContext{Platform: "twitter", Template: "post", RenderedAt: renderTime}
	if got := bare.Filename("png"); got != "twitter-post-20261019-093000.png" {
		t.Fatalf("filename without record = %q", got)
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	mu        sync.Mutex
	selection *gotheme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
