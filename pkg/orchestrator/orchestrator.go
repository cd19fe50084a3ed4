package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardgen/pkg/directive"
	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/platform"
	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/sanitize"
	"github.com/goliatone/go-cardgen/pkg/templates"
	"github.com/goliatone/go-cardgen/pkg/theme"
)

// TemplateStore loads template text and manages its cache.
type TemplateStore interface {
	LoadTemplate(ctx context.Context, platform, name string) (templates.Template, error)
	Clear()
	Stats() templates.Stats
}

// Sanitizer turns raw input into an enriched record.
type Sanitizer interface {
	Sanitize(raw record.Raw) *record.Enriched
}

// Processor resolves template directives.
type Processor interface {
	Process(tpl string, rec *record.Enriched) string
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore injects the template store.
func WithStore(store TemplateStore) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithThemes injects the theme registry shared by the default sanitizer and
// processor.
func WithThemes(themes *theme.Registry) Option {
	return func(o *Orchestrator) {
		o.themes = themes
	}
}

// WithSanitizer injects a custom sanitizer.
func WithSanitizer(s Sanitizer) Option {
	return func(o *Orchestrator) {
		o.sanitizer = s
	}
}

// WithProcessor injects a custom directive processor.
func WithProcessor(p Processor) Option {
	return func(o *Orchestrator) {
		o.processor = p
	}
}

// WithCatalog injects the platform catalogue.
func WithCatalog(catalog *platform.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithLogger sets the logger handed to every default component.
func WithLogger(logger logging.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithClock overrides the time source for render timestamps and default
// record dates.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithThemeSelector resolves go-theme variants so a request can layer variant
// tokens over the theme variables. Defaults to the theme registry's selector.
func WithThemeSelector(selector gotheme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		if selector != nil {
			o.selector = selector
		}
	}
}

// Request names the target template and carries the raw record.
type Request struct {
	Platform string
	Template string
	Record   record.Raw
	// Variant selects a go-theme variant when a selector is configured.
	Variant string
}

// Result is the outcome of a render.
type Result struct {
	HTML       string
	Context    RenderContext
	Warnings   []record.Warning
	Unresolved []string
	Duration   time.Duration
}

// Orchestrator coordinates the render pipeline. Defaults are built for any
// dependency not injected, so New() alone yields a working instance that
// renders fallback layouts.
type Orchestrator struct {
	store     TemplateStore
	themes    *theme.Registry
	sanitizer Sanitizer
	processor Processor
	catalog   *platform.Catalog
	logger    logging.Logger
	now       func() time.Time
	selector  gotheme.ThemeSelector

	initialiseErr error

	mu      sync.RWMutex
	current *RenderContext
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.catalog == nil {
		o.catalog = platform.Default()
	}
	if o.themes == nil {
		o.themes = theme.NewRegistry(theme.WithLogger(o.logger))
	}
	if o.selector == nil {
		o.selector = o.themes.Selector()
	}
	if o.store == nil {
		store, err := templates.NewStore(
			templates.WithCatalog(o.catalog),
			templates.WithLogger(o.logger),
		)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default template store: %w", err)
		} else {
			o.store = store
		}
	}
	if o.sanitizer == nil {
		o.sanitizer = sanitize.New(
			sanitize.WithThemes(o.themes),
			sanitize.WithLogger(o.logger),
			sanitize.WithClock(o.now),
		)
	}
	if o.processor == nil {
		o.processor = directive.New(
			directive.WithThemes(o.themes),
			directive.WithLogger(o.logger),
		)
	}
}

// Render validates the request, loads the template, sanitises the record and
// resolves every directive. Invalid platform or template names fail fast;
// fetch failures render the fallback layout.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}
	if err := o.catalog.Validate(req.Platform, req.Template); err != nil {
		return Result{}, fmt.Errorf("orchestrator: validate request: %w", err)
	}

	started := o.now()
	tpl, err := o.store.LoadTemplate(ctx, req.Platform, req.Template)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: load template: %w", err)
	}

	rec := o.sanitizer.Sanitize(req.Record)
	o.applyVariant(rec, req.Variant)

	html := o.processor.Process(tpl.Text, rec)
	cfg := o.catalog.Describe(req.Platform, req.Template)
	rc := RenderContext{
		Platform:    req.Platform,
		Template:    req.Template,
		DisplayName: cfg.DisplayName,
		Size:        cfg.Size(),
		Record:      rec,
		Fallback:    tpl.Fallback,
		RenderedAt:  started,
	}

	o.mu.Lock()
	o.current = &rc
	o.mu.Unlock()

	result := Result{
		HTML:       html,
		Context:    rc,
		Warnings:   append([]record.Warning(nil), rec.Warnings...),
		Unresolved: directive.Unresolved(html),
		Duration:   o.now().Sub(started),
	}
	o.logger.Info("card rendered",
		logging.String("platform", req.Platform),
		logging.String("template", req.Template),
		logging.String("theme", rec.Theme),
		logging.Bool("fallback", tpl.Fallback),
		logging.Int("warnings", len(result.Warnings)),
		logging.Int("bytes", len(html)),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

// applyVariant layers go-theme tokens over the record variables. Tokens are
// exposed as --<token>; variant tokens win over the manifest base.
func (o *Orchestrator) applyVariant(rec *record.Enriched, variant string) {
	if o.selector == nil {
		return
	}
	selection, err := o.selector.Select(rec.Theme, variant)
	if err != nil || selection == nil || selection.Manifest == nil {
		if err != nil {
			o.logger.Warn("theme selection failed",
				logging.String("theme", rec.Theme),
				logging.String("variant", variant),
				logging.Err(err),
			)
		}
		return
	}

	vars := make(map[string]string, len(rec.Variables))
	for key, value := range rec.Variables {
		vars[key] = value
	}
	for key, value := range selection.Manifest.Tokens {
		vars["--"+key] = value
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			vars["--"+key] = value
		}
	}
	rec.Variables = vars
}

// CurrentContext returns the context of the most recent successful render.
func (o *Orchestrator) CurrentContext() (RenderContext, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.current == nil {
		return RenderContext{}, false
	}
	return *o.current, true
}

// PlatformDimensions returns the canvas size for a template. Uncatalogued
// template names report platform.DefaultSize.
func (o *Orchestrator) PlatformDimensions(platformName, name string) (platform.Size, error) {
	if err := o.catalog.Validate(platformName, name); err != nil {
		return platform.Size{}, fmt.Errorf("orchestrator: dimensions: %w", err)
	}
	return o.catalog.Dimensions(platformName, name), nil
}

// ClearCache drops every cached template.
func (o *Orchestrator) ClearCache() {
	if o.store != nil {
		o.store.Clear()
	}
}

// CacheStats reports the template cache size.
func (o *Orchestrator) CacheStats() templates.Stats {
	if o.store == nil {
		return templates.Stats{}
	}
	return o.store.Stats()
}

// Themes exposes the theme registry.
func (o *Orchestrator) Themes() *theme.Registry { return o.themes }

// Catalog exposes the platform catalogue.
func (o *Orchestrator) Catalog() *platform.Catalog { return o.catalog }

// Sanitizer exposes the record sanitizer, e.g. for validation-only requests.
func (o *Orchestrator) Sanitizer() Sanitizer { return o.sanitizer }
