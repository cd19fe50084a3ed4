package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-cardgen/internal/app"
	"github.com/goliatone/go-cardgen/internal/config"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/prompt"
	"github.com/goliatone/go-cardgen/pkg/record"
)

type options struct {
	platform    string
	template    string
	recordPath  string
	output      string
	themeFiles  string
	interactive bool
	listThemes  bool
	exportTheme string
	configPath  string
	variant     string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.platform, "platform", "", "target platform (config default when empty)")
	flag.StringVar(&opts.template, "template", "", "template name (config default when empty)")
	flag.StringVar(&opts.recordPath, "record", "", "JSON record file, - for stdin")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&opts.themeFiles, "theme-file", "", "comma separated JSON/YAML theme files to register")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for the target and record fields")
	flag.BoolVar(&opts.listThemes, "list-themes", false, "list registered themes and exit")
	flag.StringVar(&opts.exportTheme, "export-theme", "", "print the named theme as JSON and exit")
	flag.StringVar(&opts.configPath, "config", config.Path(""), "YAML configuration file")
	flag.StringVar(&opts.variant, "variant", "", "go-theme variant to apply")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "cardgen: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	orch, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := importThemes(orch, opts.themeFiles); err != nil {
		return err
	}

	switch {
	case opts.listThemes:
		themes := orch.Themes()
		for _, name := range themes.Names() {
			marker := ""
			if name == themes.DefaultName() {
				marker = " (default)"
			}
			fmt.Fprintf(stdout, "%s%s\n", name, marker)
		}
		return nil
	case opts.exportTheme != "":
		data, err := orch.Themes().Export(opts.exportTheme)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s\n", data)
		return err
	}

	raw, err := readRecord(opts.recordPath, stdin)
	if err != nil {
		return err
	}

	target := orchestrator.Request{
		Platform: firstNonEmpty(opts.platform, cfg.Defaults.Platform),
		Template: firstNonEmpty(opts.template, cfg.Defaults.Template),
		Record:   raw,
		Variant:  opts.variant,
	}
	if opts.interactive {
		p := prompt.New(
			prompt.WithThemes(orch.Themes().Names()),
			prompt.WithCatalog(orch.Catalog()),
		)
		if opts.platform == "" || opts.template == "" {
			if target.Platform, target.Template, err = p.Target(ctx); err != nil {
				return err
			}
		}
		if target.Record, err = p.Record(ctx, raw); err != nil {
			return err
		}
	}

	result, err := orch.Render(ctx, target)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	if len(result.Unresolved) > 0 {
		fmt.Fprintf(stderr, "warning: unresolved directives %s\n", strings.Join(result.Unresolved, " "))
	}

	if opts.output == "" {
		_, err = io.WriteString(stdout, result.HTML)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(result.HTML), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(stderr, "%s %dx%d written to %s (capture as %s)\n",
		result.Context.DisplayName,
		result.Context.Size.Width,
		result.Context.Size.Height,
		opts.output,
		result.Context.Filename("png"),
	)
	return nil
}

func importThemes(orch *orchestrator.Orchestrator, list string) error {
	for _, path := range strings.Split(list, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read theme file: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, err := orch.Themes().Import(data, base); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
	}
	return nil
}

func readRecord(path string, stdin io.Reader) (record.Raw, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return record.Raw{}, nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return record.FromJSON(data)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
