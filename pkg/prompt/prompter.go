package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cardgen/pkg/platform"
	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/sanitize"
)

const otherCategory = "otra…"

// Option customises a Prompter.
type Option func(*Prompter)

// WithDriver swaps the terminal driver.
func WithDriver(driver Driver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithThemes sets the theme names offered for selection.
func WithThemes(names []string) Option {
	return func(p *Prompter) {
		if len(names) > 0 {
			p.themes = append([]string(nil), names...)
		}
	}
}

// WithCatalog sets the platforms and templates offered as targets.
func WithCatalog(catalog *platform.Catalog) Option {
	return func(p *Prompter) {
		if catalog != nil {
			p.catalog = catalog
		}
	}
}

// WithClock sets the clock used for the default date.
func WithClock(now func() time.Time) Option {
	return func(p *Prompter) {
		if now != nil {
			p.now = now
		}
	}
}

// Prompter walks the user through a record.
type Prompter struct {
	driver  Driver
	themes  []string
	catalog *platform.Catalog
	now     func() time.Time
}

// New builds a Prompter using the survey driver unless overridden.
func New(options ...Option) *Prompter {
	p := &Prompter{
		themes:  []string{"default"},
		catalog: platform.Default(),
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver()
	}
	return p
}

// Target asks for the platform and template to render.
func (p *Prompter) Target(ctx context.Context) (string, string, error) {
	platforms := p.catalog.Platforms()
	if len(platforms) == 0 {
		return "", "", errors.New("prompt: catalogue has no platforms")
	}
	idx, err := p.driver.Select(ctx, SelectConfig{Message: "Plataforma", Options: platforms})
	if err != nil {
		return "", "", err
	}
	if idx < 0 || idx >= len(platforms) {
		return "", "", fmt.Errorf("prompt: platform choice %d out of range", idx)
	}
	chosen := platforms[idx]

	configs := p.catalog.Templates(chosen)
	labels := make([]string, 0, len(configs))
	for _, cfg := range configs {
		labels = append(labels, fmt.Sprintf("%s (%dx%d)", cfg.Template, cfg.Width, cfg.Height))
	}
	idx, err = p.driver.Select(ctx, SelectConfig{Message: "Plantilla", Options: labels})
	if err != nil {
		return "", "", err
	}
	if idx < 0 || idx >= len(configs) {
		return "", "", fmt.Errorf("prompt: template choice %d out of range", idx)
	}
	return chosen, configs[idx].Template, nil
}

// Record asks for every input field, offering values from seed as defaults.
func (p *Prompter) Record(ctx context.Context, seed record.Raw) (record.Raw, error) {
	out := record.Raw{}
	defaults := sanitize.DefaultValues()

	steps := []func() error{
		p.text(ctx, out, seed, record.FieldTitle, "Título", required),
		p.area(ctx, out, seed, record.FieldExcerpt, "Resumen"),
		p.text(ctx, out, seed, record.FieldSource, "Fuente", nil),
		p.text(ctx, out, seed, record.FieldAuthor, "Autor", nil),
		p.category(ctx, out, seed),
		p.text(ctx, out, seed, record.FieldTags, "Etiquetas (separadas por comas)", nil),
		p.text(ctx, out, seed, record.FieldBackgroundImage, "Imagen de fondo (URL)", validURL),
		p.choose(ctx, out, seed, record.FieldTheme, "Tema", p.themes, "default"),
		p.choose(ctx, out, seed, record.FieldFontStyle, "Tipografía", sanitize.FontStyles, defaults.FontStyle),
		p.choose(ctx, out, seed, record.FieldAnimationStyle, "Animación", sanitize.AnimationStyles, defaults.AnimationStyle),
		p.date(ctx, out, seed),
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Confirm asks a yes/no question defaulting to yes.
func (p *Prompter) Confirm(ctx context.Context, message string) (bool, error) {
	return p.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: true})
}

// Info prints a message through the driver.
func (p *Prompter) Info(ctx context.Context, message string) error {
	return p.driver.Info(ctx, message)
}

func (p *Prompter) text(ctx context.Context, out, seed record.Raw, key, message string, validate func(string) error) func() error {
	return func() error {
		value, err := p.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   seedString(seed, key),
			Validator: validate,
		})
		if err != nil {
			return err
		}
		if value = strings.TrimSpace(value); value != "" {
			out[key] = value
		}
		return nil
	}
}

func (p *Prompter) area(ctx context.Context, out, seed record.Raw, key, message string) func() error {
	return func() error {
		value, err := p.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: seedString(seed, key)})
		if err != nil {
			return err
		}
		if value = strings.TrimSpace(value); value != "" {
			out[key] = value
		}
		return nil
	}
}

func (p *Prompter) choose(ctx context.Context, out, seed record.Raw, key, message string, options []string, fallback string) func() error {
	return func() error {
		current := seedString(seed, key)
		if current == "" {
			current = fallback
		}
		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: indexOf(options, current),
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(options) {
			out[key] = options[idx]
		}
		return nil
	}
}

func (p *Prompter) category(ctx context.Context, out, seed record.Raw) func() error {
	return func() error {
		options := append(sanitize.Categories(), otherCategory)
		current := sanitize.Slugify(seedString(seed, record.FieldCategory))
		def := indexOf(options, current)
		if def < 0 {
			def = indexOf(options, "general")
		}
		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:      "Categoría",
			Options:      options,
			DefaultIndex: def,
			PageSize:     len(options),
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(options)-1 {
			out[record.FieldCategory] = options[idx]
			return nil
		}
		return p.text(ctx, out, seed, record.FieldCategory, "Categoría personalizada", required)()
	}
}

func (p *Prompter) date(ctx context.Context, out, seed record.Raw) func() error {
	return func() error {
		def := seedString(seed, record.FieldDate)
		if def == "" {
			def = p.now().Format("2006-01-02")
		}
		value, err := p.driver.Input(ctx, InputConfig{
			Message:   "Fecha (AAAA-MM-DD)",
			Default:   def,
			Validator: validDate,
		})
		if err != nil {
			return err
		}
		if value = strings.TrimSpace(value); value != "" {
			out[record.FieldDate] = value
		}
		return nil
	}
}

func seedString(seed record.Raw, key string) string {
	switch v := seed[key].(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, entry := range v {
			parts = append(parts, fmt.Sprint(entry))
		}
		return strings.Join(parts, ", ")
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return ""
	}
}

func required(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("este campo es obligatorio")
	}
	return nil
}

func validURL(value string) error {
	_, err := sanitize.SafeURL(value)
	return err
}

func validDate(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return errors.New("usa el formato AAAA-MM-DD")
	}
	return nil
}
