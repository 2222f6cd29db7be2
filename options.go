package md2evernote

import (
	"io"
	"log/slog"
	"path/filepath"
	"time"
)

// discardLogger drops all records; it is the default logger.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	pipeline     PipelineOptions
	inlineStyle  string
	timeout      time.Duration
	strict       bool
	frontmatter  bool
	rewritePaths bool
	dateFormat   string
	locale       string
	now          func() time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithPipeline sets the renderer, typography and inliner stages.
// The default is the built-in renderer alone.
func WithPipeline(opts PipelineOptions) Option {
	return func(c *Converter) {
		c.cfg.pipeline = opts
	}
}

// WithPublisher sets where notes are created.
// The default is Evernote through AppleScript.
func WithPublisher(p NotePublisher) Option {
	return func(c *Converter) {
		c.publisher = p
	}
}

// WithLogger sets the logger for warnings and debug output.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds each pipeline run. Zero means no timeout.
// Panics if d is negative (programmer error).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("md2evernote: WithTimeout duration must not be negative")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStrict makes stage failures abort conversion.
func WithStrict(strict bool) Option {
	return func(c *Converter) {
		c.cfg.strict = strict
	}
}

// WithFrontmatter enables YAML or TOML frontmatter as a metadata source.
func WithFrontmatter(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.frontmatter = enabled
	}
}

// WithRewritePaths turns relative image paths into file:// URLs for
// inputs with a SourcePath.
func WithRewritePaths(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.rewritePaths = enabled
	}
}

// WithInlineStyle sets the stylesheet of the built-in inliner: an
// embedded style name or a CSS file path.
func WithInlineStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.inlineStyle = nameOrPath
	}
}

// WithTitleFormat sets the date format and locale of fallback titles.
// Empty values keep the defaults.
func WithTitleFormat(format, locale string) Option {
	return func(c *Converter) {
		if format != "" {
			c.cfg.dateFormat = format
		}
		if locale != "" {
			c.cfg.locale = locale
		}
	}
}

// WithClock sets the time source of fallback titles.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.cfg.now = now
		}
	}
}

func sourceDir(sourcePath string) string {
	return filepath.Dir(sourcePath)
}
