package platform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

const templateNamePattern = `^[a-z0-9][a-z0-9_-]{0,63}$`

var templateNameRE = regexp.MustCompile(templateNamePattern)

// Built-in platform identifiers.
const (
	Instagram = "instagram"
	Facebook  = "facebook"
	Twitter   = "twitter"
	LinkedIn  = "linkedin"
)

// DefaultSize is reported for templates the catalogue does not describe.
var DefaultSize = Size{Width: 1080, Height: 1080}

// Size is a canvas size in CSS pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Config describes one template of a platform.
type Config struct {
	Platform    string `json:"platform"`
	Template    string `json:"template"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	DisplayName string `json:"displayName"`
}

// Size returns the canvas dimensions.
func (c Config) Size() Size { return Size{Width: c.Width, Height: c.Height} }

// Catalog maps (platform, template) pairs to their configuration.
type Catalog struct {
	mu        sync.RWMutex
	platforms map[string]map[string]Config
}

// NewCatalog returns an empty catalogue.
func NewCatalog() *Catalog {
	return &Catalog{platforms: make(map[string]map[string]Config)}
}

// Default returns a catalogue holding the built-in platforms.
func Default() *Catalog {
	c := NewCatalog()
	for _, cfg := range builtin() {
		c.MustRegister(cfg)
	}
	return c
}

func builtin() []Config {
	return []Config{
		{Platform: Instagram, Template: "post", Width: 1080, Height: 1080, DisplayName: "Instagram Post"},
		{Platform: Instagram, Template: "story", Width: 1080, Height: 1920, DisplayName: "Instagram Story"},
		{Platform: Instagram, Template: "portrait", Width: 1080, Height: 1350, DisplayName: "Instagram Portrait"},
		{Platform: Facebook, Template: "post", Width: 1200, Height: 630, DisplayName: "Facebook Post"},
		{Platform: Facebook, Template: "story", Width: 1080, Height: 1920, DisplayName: "Facebook Story"},
		{Platform: Facebook, Template: "cover", Width: 820, Height: 312, DisplayName: "Facebook Cover"},
		{Platform: Twitter, Template: "post", Width: 1200, Height: 675, DisplayName: "Twitter Post"},
		{Platform: Twitter, Template: "header", Width: 1500, Height: 500, DisplayName: "Twitter Header"},
		{Platform: LinkedIn, Template: "post", Width: 1200, Height: 627, DisplayName: "LinkedIn Post"},
		{Platform: LinkedIn, Template: "banner", Width: 1584, Height: 396, DisplayName: "LinkedIn Banner"},
	}
}

// Register adds or replaces a template configuration.
func (c *Catalog) Register(cfg Config) error {
	cfg.Platform = strings.TrimSpace(cfg.Platform)
	cfg.Template = strings.TrimSpace(cfg.Template)
	if cfg.Platform == "" {
		return fmt.Errorf("platform: platform is required")
	}
	if !templateNameRE.MatchString(cfg.Template) {
		return &ValidationError{Platform: cfg.Platform, Template: cfg.Template, Err: ErrInvalidTemplateName}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("platform: %s/%s: dimensions must be positive", cfg.Platform, cfg.Template)
	}
	if cfg.DisplayName == "" {
		cfg.DisplayName = cfg.Platform + " " + cfg.Template
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	templates, ok := c.platforms[cfg.Platform]
	if !ok {
		templates = make(map[string]Config)
		c.platforms[cfg.Platform] = templates
	}
	templates[cfg.Template] = cfg
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (c *Catalog) MustRegister(cfg Config) {
	if err := c.Register(cfg); err != nil {
		panic(err)
	}
}

// Validate checks that platform is known and name is a well-formed template
// identifier. The template does not need a catalogue entry.
func (c *Catalog) Validate(platform, name string) error {
	if !c.HasPlatform(platform) {
		return &ValidationError{Platform: platform, Template: name, Err: ErrInvalidPlatform}
	}
	if !templateNameRE.MatchString(name) {
		return &ValidationError{Platform: platform, Template: name, Err: ErrInvalidTemplateName}
	}
	return nil
}

// HasPlatform reports whether platform has at least one template registered.
func (c *Catalog) HasPlatform(platform string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.platforms[platform]
	return ok
}

// Lookup returns the configuration for a template.
func (c *Catalog) Lookup(platform, name string) (Config, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.platforms[platform][name]
	return cfg, ok
}

// Dimensions returns the canvas size for a template, DefaultSize when the
// pair is not catalogued.
func (c *Catalog) Dimensions(platform, name string) Size {
	if cfg, ok := c.Lookup(platform, name); ok {
		return cfg.Size()
	}
	return DefaultSize
}

// Describe returns the catalogue entry or a synthesised one carrying
// DefaultSize.
func (c *Catalog) Describe(platform, name string) Config {
	if cfg, ok := c.Lookup(platform, name); ok {
		return cfg
	}
	return Config{
		Platform:    platform,
		Template:    name,
		Width:       DefaultSize.Width,
		Height:      DefaultSize.Height,
		DisplayName: platform + " " + name,
	}
}

// Platforms returns the sorted platform identifiers.
func (c *Catalog) Platforms() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.platforms))
	for name := range c.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates lists the configurations of platform sorted by template name.
func (c *Catalog) Templates(platform string) []Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	templates := c.platforms[platform]
	out := make([]Config, 0, len(templates))
	for _, cfg := range templates {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Template < out[j].Template })
	return out
}

// All lists every configuration ordered by platform then template.
func (c *Catalog) All() []Config {
	var out []Config
	for _, platform := range c.Platforms() {
		out = append(out, c.Templates(platform)...)
	}
	return out
}
