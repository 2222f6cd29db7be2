package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	md2evernote "github.com/alnah/go-md2evernote"
	"github.com/alnah/go-md2evernote/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrConflictingFlags = errors.New("conflicting flags")
)

// stdinArg names standard input among file arguments.
const stdinArg = "-"

// runConvert loads configuration, builds the converter and creates one
// note from stdin or the concatenated files.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	envCfg := loadEnvConfig(env.getenv)
	warnUnknownEnvVars(logger, env.environ())

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// Precedence: flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := converterOptions(cfg, env, logger)
	if err != nil {
		return err
	}

	// Prerequisites are checked here, before any input is opened.
	conv, err := md2evernote.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pipeline: %s\n", conv.Pipeline())
	}

	input, closeInput, err := openInput(positionalArgs, env.Stdin)
	if err != nil {
		return err
	}
	defer closeInput()

	result, err := conv.Convert(ctx, input)
	if err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Created note %q (%s)\n", result.Note.Title, result.NoteID)
	}
	return nil
}

// loadConfig loads the config named by the flag, else by
// MD2EVERNOTE_CONFIG, else returns the defaults.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags to cfg (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	p := flags.pipeline

	if p.smart && p.noSmart {
		return fmt.Errorf("%w: --smart and --no-smart", ErrConflictingFlags)
	}
	if p.inliner != "" && p.noInline {
		return fmt.Errorf("%w: --inliner and --no-inline", ErrConflictingFlags)
	}
	if flags.common.quiet && flags.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose", ErrConflictingFlags)
	}

	// Pipeline flags
	if p.renderer != "" {
		cfg.Renderer.Path = p.renderer
	}
	if len(p.rendererArgs) > 0 {
		cfg.Renderer.Args = p.rendererArgs
	}
	if p.typography != "" {
		cfg.Typography.Path = p.typography
	}
	if p.smart {
		cfg.Typography.Enabled = true
	}
	if p.noSmart {
		cfg.Typography.Enabled = false
	}
	if p.inliner != "" {
		cfg.Inliner.Path = p.inliner
		cfg.Inliner.Enabled = true
	}
	if p.noInline {
		cfg.Inliner.Enabled = false
	}
	if p.style != "" {
		cfg.Inliner.Style = p.style
	}
	if p.timeout != "" {
		cfg.Pipeline.Timeout = p.timeout
	}
	if p.strict {
		cfg.Pipeline.Strict = true
	}
	if p.rewritePaths {
		cfg.Pipeline.RewritePaths = true
	}

	// Publish flags
	if flags.publish.dryRun {
		cfg.Publisher.Kind = config.PublisherStdout
	}
	if flags.publish.bundleID != "" {
		cfg.Publisher.BundleID = flags.publish.bundleID
	}

	// Title flags
	if flags.title.dateFormat != "" {
		cfg.Title.DateFormat = flags.title.dateFormat
	}
	if flags.title.locale != "" {
		cfg.Title.Locale = flags.title.locale
	}

	if flags.frontmatter {
		cfg.Metadata.Frontmatter = true
	}

	return nil
}

// converterOptions maps a validated config onto converter options.
func converterOptions(cfg *config.Config, env *Environment, logger *slog.Logger) ([]md2evernote.Option, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	locale := cfg.Title.Locale
	if locale == "" {
		locale = md2evernote.DetectLocale(env.getenv)
	}

	return []md2evernote.Option{
		md2evernote.WithPipeline(pipelineOptions(cfg)),
		md2evernote.WithPublisher(newPublisher(cfg, env)),
		md2evernote.WithLogger(logger),
		md2evernote.WithTimeout(timeout),
		md2evernote.WithStrict(cfg.Pipeline.Strict),
		md2evernote.WithFrontmatter(cfg.Metadata.Frontmatter),
		md2evernote.WithRewritePaths(cfg.Pipeline.RewritePaths),
		md2evernote.WithInlineStyle(cfg.Inliner.Style),
		md2evernote.WithTitleFormat(cfg.Title.DateFormat, locale),
		md2evernote.WithClock(env.Now),
	}, nil
}

// pipelineOptions maps the renderer, typography and inliner sections.
func pipelineOptions(cfg *config.Config) md2evernote.PipelineOptions {
	return md2evernote.PipelineOptions{
		Renderer: md2evernote.RendererOptions{
			Path: cfg.Renderer.Path,
			Args: cfg.Renderer.Args,
		},
		Typography: md2evernote.TypographyOptions{
			Enabled:      cfg.Typography.Enabled,
			ExtensionOn:  cfg.Typography.ExtensionOn,
			ExtensionOff: cfg.Typography.ExtensionOff,
			Path:         cfg.Typography.Path,
		},
		Inliner: md2evernote.InlinerOptions{
			Enabled: cfg.Inliner.Enabled,
			Path:    cfg.Inliner.Path,
		},
	}
}

// newPublisher returns the dry-run writer for the stdout kind and the
// AppleScript bridge otherwise.
func newPublisher(cfg *config.Config, env *Environment) md2evernote.NotePublisher {
	if cfg.Publisher.Kind == config.PublisherStdout {
		return &md2evernote.WriterPublisher{W: env.Stdout}
	}
	return md2evernote.NewAppleScriptPublisher(cfg.Publisher.BundleID)
}

// openInput returns stdin when there are no arguments, otherwise the
// named files concatenated in order. "-" reads stdin in place. SourcePath
// is set only for a single file. The returned func closes opened files.
func openInput(args []string, stdin io.Reader) (md2evernote.Input, func(), error) {
	if len(args) == 0 {
		return md2evernote.Input{Reader: stdin}, func() {}, nil
	}

	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	readers := make([]io.Reader, 0, len(args))
	for _, arg := range args {
		if arg == stdinArg {
			readers = append(readers, stdin)
			continue
		}
		f, err := os.Open(arg) // #nosec G304 -- user-provided input path
		if err != nil {
			closeAll()
			return md2evernote.Input{}, nil, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		}
		files = append(files, f)
		readers = append(readers, f)
	}

	input := md2evernote.Input{Reader: io.MultiReader(readers...)}
	if len(args) == 1 && args[0] != stdinArg {
		input.SourcePath = args[0]
	}
	return input, closeAll, nil
}
