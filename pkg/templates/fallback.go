package templates

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-cardgen/pkg/platform"
	"github.com/goliatone/go-cardgen/pkg/render/template"
	"github.com/goliatone/go-cardgen/pkg/render/template/gotemplate"
)

//go:embed layouts/*.tpl
var layoutFS embed.FS

const fallbackLayout = "fallback"

// directiveTokens are handed to the layout as plain values so the pongo2
// delimiters never collide with the card directive grammar.
var directiveTokens = map[string]string{
	"title":                "{{title}}",
	"shortExcerpt":         "{{shortExcerpt}}",
	"source":               "{{source}}",
	"date":                 "{{date}}",
	"categoryIcon":         "{{categoryIcon}}",
	"categoryLabel":        "{{categoryLabel}}",
	"theme":                "{{theme}}",
	"fontStyle":            "{{fontStyle}}",
	"animationStyle":       "{{animationStyle}}",
	"backgroundImageStyle": "{{backgroundImageStyle}}",
	"ifCategory":           "{{#if category}}",
	"ifTags":               "{{#if tags}}",
	"eachTags":             "{{#each tags}}",
	"name":                 "{{name}}",
	"color":                "{{color}}",
	"endEach":              "{{/each}}",
	"endIf":                "{{/if}}",
}

// Generator builds a fallback card layout sized for a platform template.
type Generator struct {
	catalog *platform.Catalog
	engine  template.TemplateRenderer
}

// NewGenerator builds a Generator over the embedded layout. A nil engine
// selects the bundled pongo2 engine.
func NewGenerator(catalog *platform.Catalog, engine template.TemplateRenderer) (*Generator, error) {
	if catalog == nil {
		catalog = platform.Default()
	}
	if engine == nil {
		layouts, err := fs.Sub(layoutFS, "layouts")
		if err != nil {
			return nil, fmt.Errorf("templates: fallback layouts: %w", err)
		}
		engine, err = gotemplate.New(gotemplate.WithFS(layouts))
		if err != nil {
			return nil, fmt.Errorf("templates: fallback engine: %w", err)
		}
	}
	return &Generator{catalog: catalog, engine: engine}, nil
}

// Generate renders the fallback layout. The output always carries the
// configured width and height, even when the layout engine fails.
func (g *Generator) Generate(platformName, name string) string {
	cfg := g.catalog.Describe(platformName, name)
	data := map[string]any{
		"platform":    cfg.Platform,
		"template":    cfg.Template,
		"displayName": cfg.DisplayName,
		"width":       cfg.Width,
		"height":      cfg.Height,
		"padding":     scale(cfg, 60),
		"titleSize":   scale(cfg, 64),
		"excerptSize": scale(cfg, 32),
		"d":           directiveTokens,
	}
	out, err := g.engine.RenderTemplate(fallbackLayout, data)
	if err != nil || out == "" {
		return minimalFallback(cfg)
	}
	return out
}

// scale sizes a value authored for a 1080px wide canvas to cfg.
func scale(cfg platform.Config, base int) int {
	short := cfg.Width
	if cfg.Height < short {
		short = cfg.Height
	}
	v := base * short / 1080
	if v < 1 {
		return 1
	}
	return v
}

func minimalFallback(cfg platform.Config) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="utf-8"></head><body>
<div class="card" data-width="%d" data-height="%d" style="width: %dpx; height: %dpx; %s">
<h1>{{title}}</h1><p>{{shortExcerpt}}</p>
</div>
</body></html>
`, cfg.Width, cfg.Height, cfg.Width, cfg.Height, "{{backgroundImageStyle}}")
}
