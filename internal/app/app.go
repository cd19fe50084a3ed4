// Package app assembles the render pipeline from binary configuration.
package app

import (
	"context"
	"fmt"
	"os"

	cardgen "github.com/goliatone/go-cardgen"
	"github.com/goliatone/go-cardgen/internal/config"
	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/platform"
	"github.com/goliatone/go-cardgen/pkg/sanitize"
	"github.com/goliatone/go-cardgen/pkg/templates"
	"github.com/goliatone/go-cardgen/pkg/theme"
)

// NewLogger builds the zap-backed logger described by cfg.
func NewLogger(cfg *config.Config) (logging.Logger, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("app: logger: %w", err)
	}
	return logger, nil
}

// Build wires themes, templates and record defaults from cfg. Preload
// failures are logged; the affected keys render their fallback until a fetch
// succeeds.
func Build(ctx context.Context, cfg *config.Config, logger logging.Logger) (*orchestrator.Orchestrator, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	catalog := platform.Default()

	themes := theme.NewRegistry(
		theme.WithLogger(logger),
		theme.WithDefault(cfg.Themes.Default),
	)
	if cfg.Themes.Dir != "" {
		loaded, err := themes.LoadFS(os.DirFS(cfg.Themes.Dir))
		if err != nil {
			return nil, fmt.Errorf("app: load themes from %s: %w", cfg.Themes.Dir, err)
		}
		logger.Info("themes loaded",
			logging.String("dir", cfg.Themes.Dir),
			logging.Strings("themes", loaded),
		)
	}
	if !themes.Has(themes.DefaultName()) {
		return nil, fmt.Errorf("app: default theme %q is not registered", themes.DefaultName())
	}

	store, err := cardgen.NewStore(cardgen.Sources{
		Dir:     cfg.Templates.Dir,
		BaseURL: cfg.Templates.BaseURL,
		Timeout: cfg.Templates.Timeout,
	},
		templates.WithCatalog(catalog),
		templates.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("app: template store: %w", err)
	}

	keys, err := cfg.PreloadKeys()
	if err != nil {
		return nil, err
	}
	if len(keys) > 0 {
		if err := store.Preload(ctx, keys...); err != nil {
			logger.Warn("template preload incomplete", logging.Err(err))
		}
		logger.Info("templates preloaded", logging.String("cache", store.Stats().String()))
	}

	sanitizer := sanitize.New(
		sanitize.WithThemes(themes),
		sanitize.WithLogger(logger),
		sanitize.WithDefaults(cfg.Defaults.Record()),
	)

	return orchestrator.New(
		orchestrator.WithCatalog(catalog),
		orchestrator.WithThemes(themes),
		orchestrator.WithThemeSelector(themes.Selector()),
		orchestrator.WithStore(store),
		orchestrator.WithSanitizer(sanitizer),
		orchestrator.WithLogger(logger),
	), nil
}
