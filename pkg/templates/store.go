package templates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/platform"
)

// DefaultTimeout bounds a single template fetch.
const DefaultTimeout = 5 * time.Second

// Key identifies a template.
type Key struct {
	Platform string `json:"platform"`
	Template string `json:"template"`
}

func (k Key) String() string { return k.Platform + ":" + k.Template }

// Template is the outcome of a load.
type Template struct {
	Key
	Text string
	// Fallback is set when Text was generated because the fetch failed.
	Fallback bool
	// Cached is set when Text came from the cache.
	Cached bool
	// LoadErr holds the *LoadError that triggered the fallback.
	LoadErr error
}

// Stats summarises the cache.
type Stats struct {
	Entries int      `json:"entries"`
	Bytes   int      `json:"bytes"`
	Keys    []string `json:"keys"`
}

// String renders e.g. "2 templates, 4.1 kB".
func (s Stats) String() string {
	noun := "templates"
	if s.Entries == 1 {
		noun = "template"
	}
	return fmt.Sprintf("%d %s, %s", s.Entries, noun, humanize.Bytes(uint64(s.Bytes)))
}

// Option customises a Store.
type Option func(*Store)

// WithFetcher sets where templates are read from.
func WithFetcher(fetcher Fetcher) Option {
	return func(s *Store) {
		s.fetcher = fetcher
	}
}

// WithCatalog sets the platform catalogue used for validation and fallback
// sizing.
func WithCatalog(catalog *platform.Catalog) Option {
	return func(s *Store) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithLogger sets the logger used for cache and load events.
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeout bounds each fetch. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.timeout = timeout
	}
}

// WithGenerator replaces the fallback generator.
func WithGenerator(generator *Generator) Option {
	return func(s *Store) {
		s.generator = generator
	}
}

// Store caches template text keyed by platform:name. Entries are immutable
// until cleared or invalidated.
type Store struct {
	mu    sync.RWMutex
	cache map[string]string

	fetcher   Fetcher
	catalog   *platform.Catalog
	generator *Generator
	logger    logging.Logger
	timeout   time.Duration
}

// NewStore builds a Store. Without WithFetcher every load falls back.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		cache:   make(map[string]string),
		catalog: platform.Default(),
		logger:  logging.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.generator == nil {
		generator, err := NewGenerator(s.catalog, nil)
		if err != nil {
			return nil, err
		}
		s.generator = generator
	}
	return s, nil
}

// Catalog exposes the platform catalogue.
func (s *Store) Catalog() *platform.Catalog { return s.catalog }

// Load returns template text for (platformName, name). Invalid coordinates
// return a *platform.ValidationError. Fetch failures are logged and answered
// with a generated fallback, never an error.
func (s *Store) Load(ctx context.Context, platformName, name string) (string, error) {
	tpl, err := s.LoadTemplate(ctx, platformName, name)
	if err != nil {
		return "", err
	}
	return tpl.Text, nil
}

// LoadTemplate is Load with the load outcome attached.
func (s *Store) LoadTemplate(ctx context.Context, platformName, name string) (Template, error) {
	if err := s.catalog.Validate(platformName, name); err != nil {
		return Template{}, err
	}
	key := Key{Platform: platformName, Template: name}

	s.mu.RLock()
	text, ok := s.cache[key.String()]
	s.mu.RUnlock()
	if ok {
		return Template{Key: key, Text: text, Cached: true}, nil
	}

	text, err := s.fetch(ctx, key)
	if err != nil {
		s.logger.Warn("template load failed, using fallback",
			logging.String("platform", platformName),
			logging.String("template", name),
			logging.Err(err),
		)
		return Template{
			Key:      key,
			Text:     s.generator.Generate(platformName, name),
			Fallback: true,
			LoadErr:  err,
		}, nil
	}

	s.mu.Lock()
	s.cache[key.String()] = text
	s.mu.Unlock()
	s.logger.Debug("template cached",
		logging.String("key", key.String()),
		logging.Int("bytes", len(text)),
	)
	return Template{Key: key, Text: text}, nil
}

func (s *Store) fetch(ctx context.Context, key Key) (string, error) {
	p := Path(key.Platform, key.Template)
	wrap := func(err error) error {
		return &LoadError{Platform: key.Platform, Template: key.Template, Path: p, Err: err}
	}
	if s.fetcher == nil {
		return "", wrap(errors.New("no fetcher configured"))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	data, err := s.fetcher.Fetch(ctx, p)
	if err != nil {
		return "", wrap(err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", wrap(ErrEmptyTemplate)
	}
	return text, nil
}

// Put stores text under (platformName, name), replacing any cached entry.
func (s *Store) Put(platformName, name, text string) error {
	if err := s.catalog.Validate(platformName, name); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("templates: %s/%s: %w", platformName, name, ErrEmptyTemplate)
	}
	s.mu.Lock()
	s.cache[Key{Platform: platformName, Template: name}.String()] = text
	s.mu.Unlock()
	return nil
}

// Preload loads every key and reports the ones that could not be fetched.
// Failed keys are not cached.
func (s *Store) Preload(ctx context.Context, keys ...Key) error {
	var errs []error
	for _, key := range keys {
		tpl, err := s.LoadTemplate(ctx, key.Platform, key.Template)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if tpl.LoadErr != nil {
			errs = append(errs, tpl.LoadErr)
		}
	}
	return errors.Join(errs...)
}

// Clear drops every cached template.
func (s *Store) Clear() {
	s.mu.Lock()
	n := len(s.cache)
	s.cache = make(map[string]string)
	s.mu.Unlock()
	s.logger.Info("template cache cleared", logging.Int("entries", n))
}

// Invalidate drops one cached template and reports whether it was present.
func (s *Store) Invalidate(platformName, name string) bool {
	key := Key{Platform: platformName, Template: name}.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache[key]; !ok {
		return false
	}
	delete(s.cache, key)
	return true
}

// Stats reports the cache size.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := Stats{Entries: len(s.cache), Keys: make([]string, 0, len(s.cache))}
	for key, text := range s.cache {
		stats.Keys = append(stats.Keys, key)
		stats.Bytes += len(text)
	}
	sort.Strings(stats.Keys)
	return stats
}
