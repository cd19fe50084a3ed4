// Package cardgen renders social-media cards from HTML templates and content
// records. The root package wires the render pipeline with the embedded
// template set; the pkg/ packages expose each stage on its own.
package cardgen

import (
	"context"
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/templates"
)

// Request names the target template and carries the raw record.
type Request = orchestrator.Request

// Result is the outcome of a render.
type Result = orchestrator.Result

// RenderContext describes a finished render.
type RenderContext = orchestrator.RenderContext

// Record is an unvalidated input record.
type Record = record.Raw

// Sources lists template locations consulted before the embedded set, in
// order: Dir, then BaseURL.
type Sources struct {
	Dir     string
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Fetcher chains the configured sources with the embedded templates.
func (s Sources) Fetcher() templates.Fetcher {
	var fetchers []templates.Fetcher
	if s.Dir != "" {
		fetchers = append(fetchers, templates.DirFetcher{Root: s.Dir})
	}
	if s.BaseURL != "" {
		fetchers = append(fetchers, templates.HTTPFetcher{BaseURL: s.BaseURL, Client: s.Client, Timeout: s.Timeout})
	}
	return templates.Chain(append(fetchers, EmbeddedFetcher())...)
}

// NewStore builds a template store over src. Options apply after the fetcher
// so callers may still replace it.
func NewStore(src Sources, options ...templates.Option) (*templates.Store, error) {
	base := []templates.Option{templates.WithFetcher(src.Fetcher())}
	if src.Timeout > 0 {
		base = append(base, templates.WithTimeout(src.Timeout))
	}
	return templates.NewStore(append(base, options...)...)
}

// NewOrchestrator returns an orchestrator that reads the embedded templates
// unless options inject another store.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	var base []orchestrator.Option
	if store, err := NewStore(Sources{}); err == nil {
		base = append(base, orchestrator.WithStore(store))
	}
	return orchestrator.New(append(base, options...)...)
}

// Render is the one-call entry point: it renders rec into the named template
// with a fresh orchestrator.
func Render(ctx context.Context, platform, template string, rec Record, options ...orchestrator.Option) (Result, error) {
	return NewOrchestrator(options...).Render(ctx, Request{
		Platform: platform,
		Template: template,
		Record:   rec,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// requests can name a variant.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
