package theme

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardgen/pkg/logging"
)

const manifestVersion = "1.0.0"

var (
	namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	keyPattern  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

// unsafeCSS are characters that would let a palette value escape its
// declaration in the injected stylesheet or form a directive.
const unsafeCSS = "{}<>;"

// Option customises a Registry.
type Option func(*Registry)

// WithLogger routes registry diagnostics to logger.
func WithLogger(logger logging.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDefault overrides the fallback theme name. The theme must be registered
// before it is used as a fallback.
func WithDefault(name string) Option {
	return func(r *Registry) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.defaultName = trimmed
		}
	}
}

// WithoutBuiltins starts the registry empty.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.skipBuiltins = true
	}
}

type entry struct {
	def      Definition
	vars     map[string]string
	variants map[string]map[string]string
}

// Registry stores theme definitions and their precomputed variable maps. It
// is safe for concurrent use; reads vastly outnumber registrations.
type Registry struct {
	mu           sync.RWMutex
	themes       map[string]entry
	defaultName  string
	skipBuiltins bool
	logger       logging.Logger

	// manifests mirrors themes as go-theme manifests. It is rebuilt on
	// removal because go-theme registries cannot drop a manifest.
	manifests *gotheme.MemoryRegistry
}

// NewRegistry builds a registry seeded with the stock themes.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		themes:      make(map[string]entry),
		defaultName: DefaultName,
		logger:      logging.NewNop(),
		manifests:   gotheme.NewRegistry(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if !r.skipBuiltins {
		for _, def := range Builtin() {
			if err := r.Register(def.Name, def); err != nil {
				panic(fmt.Sprintf("theme: builtin %q: %v", def.Name, err))
			}
		}
	}
	return r
}

// Register validates def and stores it under name, replacing any previous
// definition. The variable map is computed eagerly.
func (r *Registry) Register(name string, def Definition) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(def.Name)
	}
	if err := validate(name, def); err != nil {
		return err
	}

	stored := def.clone()
	stored.Name = name
	normalizeColors(stored.Colors)

	vars, err := generateVariables(stored)
	if err != nil {
		return &RegistrationError{Theme: name, Reason: err.Error()}
	}
	var variants map[string]map[string]string
	if len(stored.Variants) > 0 {
		variants = make(map[string]map[string]string, len(stored.Variants))
		for variant, overrides := range stored.Variants {
			normalizeColors(overrides.Colors)
			values, err := variantVariables(overrides)
			if err != nil {
				return &RegistrationError{Theme: name, Reason: fmt.Sprintf("variant %q: %v", variant, err)}
			}
			variants[variant] = values
		}
	}
	e := entry{def: stored, vars: vars, variants: variants}

	r.mu.Lock()
	_, replaced := r.themes[name]
	r.themes[name] = e
	r.mirror(name, e)
	r.mu.Unlock()

	r.logger.Debug("theme registered",
		logging.String("theme", name),
		logging.Int("variables", len(vars)),
		logging.Int("variants", len(variants)),
		logging.Bool("replaced", replaced),
	)
	return nil
}

func normalizeColors(colors map[string]string) {
	for role, value := range colors {
		normalized, _ := NormalizeHex(value)
		colors[role] = normalized
	}
}

// mirror publishes e as a go-theme manifest, overwriting any previous one
// under the same name. Callers hold r.mu.
func (r *Registry) mirror(name string, e entry) {
	if err := r.manifests.Register(buildManifest(name, e)); err != nil {
		r.logger.Warn("theme manifest not mirrored",
			logging.String("theme", name),
			logging.Err(err),
		)
	}
}

// buildManifest exposes the variable map as go-theme tokens without the
// leading "--". Each variant carries only the tokens it overrides.
func buildManifest(name string, e entry) *gotheme.Manifest {
	manifest := &gotheme.Manifest{
		Name:        name,
		Version:     manifestVersion,
		Description: e.def.Description,
		Tokens:      tokens(e.vars),
	}
	if len(e.variants) > 0 {
		manifest.Variants = make(map[string]gotheme.Variant, len(e.variants))
		for variant, vars := range e.variants {
			manifest.Variants[variant] = gotheme.Variant{
				Description: e.def.Variants[variant].Description,
				Tokens:      tokens(vars),
			}
		}
	}
	return manifest
}

func tokens(vars map[string]string) map[string]string {
	out := make(map[string]string, len(vars))
	for key, value := range vars {
		out[strings.TrimPrefix(key, "--")] = value
	}
	return out
}

type manifestProvider struct {
	r *Registry
}

func (p manifestProvider) current() *gotheme.MemoryRegistry {
	p.r.mu.RLock()
	defer p.r.mu.RUnlock()
	return p.r.manifests
}

func (p manifestProvider) Theme(name string, opts ...gotheme.QueryOption) (*gotheme.Manifest, error) {
	return p.current().Theme(name, opts...)
}

func (p manifestProvider) Themes() []gotheme.ManifestRef {
	return p.current().Themes()
}

// Provider exposes the go-theme view of the registry. It follows later
// registrations and removals.
func (r *Registry) Provider() gotheme.ThemeProvider {
	return manifestProvider{r: r}
}

// Selector returns a go-theme selector over Provider that falls back to the
// default theme.
func (r *Registry) Selector() gotheme.ThemeSelector {
	return gotheme.Selector{Registry: r.Provider(), DefaultTheme: r.defaultName}
}

// Manifest builds a go-theme manifest for name.
func (r *Registry) Manifest(name string) (*gotheme.Manifest, bool) {
	r.mu.RLock()
	e, ok := r.themes[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return buildManifest(name, e), true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.themes[name]
	return ok
}

// Resolve returns name when registered and the default theme otherwise.
func (r *Registry) Resolve(name string) string {
	if r.Has(name) {
		return name
	}
	return r.defaultName
}

// DefaultName reports the fallback theme.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names lists registered themes alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns a copy of the stored definition.
func (r *Registry) Definition(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.themes[name]
	if !ok {
		return Definition{}, false
	}
	return e.def.clone(), true
}

// Variables returns the variable map for name, falling back to the default
// theme. The result is a copy and never nil.
func (r *Registry) Variables(name string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.themes[name]
	if !ok {
		e, ok = r.themes[r.defaultName]
	}
	if !ok {
		return map[string]string{}
	}
	return copyStringMap(e.vars)
}

// ResolvePlaceholder looks up a single palette value for
// {{theme.<kind>.<key>}} tokens. Unknown themes resolve against the default.
func (r *Registry) ResolvePlaceholder(kind Kind, key, themeName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.themes[themeName]
	if !ok {
		e, ok = r.themes[r.defaultName]
	}
	if !ok {
		return "", false
	}
	value, ok := e.def.section(kind)[key]
	return value, ok
}

// Unregister removes a theme. The default theme cannot be removed.
func (r *Registry) Unregister(name string) bool {
	if name == r.defaultName {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.themes[name]; !ok {
		return false
	}
	delete(r.themes, name)
	r.manifests = gotheme.NewRegistry()
	for other, e := range r.themes {
		r.mirror(other, e)
	}
	return true
}

func validate(name string, def Definition) error {
	if !namePattern.MatchString(name) {
		return &RegistrationError{Theme: name, Reason: "name must match " + namePattern.String()}
	}
	switch {
	case def.Colors == nil:
		return &RegistrationError{Theme: name, Reason: "colors section is required"}
	case def.Gradients == nil:
		return &RegistrationError{Theme: name, Reason: "gradients section is required"}
	case def.Shadows == nil:
		return &RegistrationError{Theme: name, Reason: "shadows section is required"}
	}
	var missing []string
	for _, role := range ColorRoles {
		value, ok := def.Colors[role]
		if !ok {
			missing = append(missing, role)
			continue
		}
		if _, err := parseHex(value); err != nil {
			return &RegistrationError{Theme: name, Reason: fmt.Sprintf("color %q: %v", role, err)}
		}
	}
	if len(missing) > 0 {
		return &RegistrationError{Theme: name, Reason: "missing color roles: " + strings.Join(missing, ", ")}
	}
	if err := validateSections(name, "", def.Colors, def.Gradients, def.Shadows); err != nil {
		return err
	}
	for variant, v := range def.Variants {
		if !namePattern.MatchString(variant) {
			return &RegistrationError{Theme: name, Reason: fmt.Sprintf("variant %q must match %s", variant, namePattern)}
		}
		if err := validateSections(name, "variant "+variant+": ", v.Colors, v.Gradients, v.Shadows); err != nil {
			return err
		}
	}
	return nil
}

// validateSections checks keys and values of each palette section. Two keys
// that produce the same CSS variable are rejected so the variable map never
// depends on map iteration order.
func validateSections(name, scope string, colors, gradients, shadows map[string]string) error {
	sections := []struct {
		kind   Kind
		values map[string]string
	}{
		{KindColor, colors},
		{KindGradient, gradients},
		{KindShadow, shadows},
	}
	for _, section := range sections {
		seen := make(map[string]string, len(section.values))
		for _, key := range sortedKeys(section.values) {
			value := section.values[key]
			if !keyPattern.MatchString(key) {
				return &RegistrationError{Theme: name, Reason: fmt.Sprintf("%s%s key %q must match %s", scope, section.kind, key, keyPattern)}
			}
			variable := kebab(key)
			if previous, ok := seen[variable]; ok {
				return &RegistrationError{Theme: name, Reason: fmt.Sprintf("%s%s keys %q and %q both map to %q", scope, section.kind, previous, key, variable)}
			}
			seen[variable] = key

			if section.kind == KindColor {
				if _, err := parseHex(value); err != nil {
					return &RegistrationError{Theme: name, Reason: fmt.Sprintf("%scolor %q: %v", scope, key, err)}
				}
				continue
			}
			if strings.TrimSpace(value) == "" || strings.ContainsAny(value, unsafeCSS) {
				return &RegistrationError{Theme: name, Reason: fmt.Sprintf("%s%s %q must be a non-empty CSS value without %q", scope, section.kind, key, unsafeCSS)}
			}
		}
	}
	return nil
}
