package md2evernote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-md2evernote/internal/dateutil"
	"github.com/alnah/go-md2evernote/internal/pipeline"
)

// Input is one document to convert.
type Input struct {
	Reader io.Reader
	// SourcePath is the input file when there is exactly one. With path
	// rewriting enabled, relative images resolve against its directory.
	SourcePath string
}

// Result describes a created note.
type Result struct {
	NoteID NoteID
	Note   Note
	// PipelineErr holds the stage failures when the note was published
	// with degraded content. Always nil in strict mode.
	PipelineErr error
}

// Converter turns Markdown documents into notes.
// Create with NewConverter, use Convert for conversion, and Close when done.
type Converter struct {
	cfg       converterConfig
	pipeline  *Pipeline
	publisher NotePublisher
	inliner   *BrowserInliner
	logger    *slog.Logger
}

// NewConverter builds the pipeline and checks that every external program
// it needs is executable. Returns an error wrapping
// ErrMissingPrerequisite before any input is read otherwise.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			pipeline: PipelineOptions{
				Renderer:   RendererOptions{Path: Builtin},
				Typography: TypographyOptions{ExtensionOn: "--smart", ExtensionOff: "--nosmart"},
			},
			dateFormat: dateutil.DefaultDateTimeFormat,
			locale:     dateutil.DefaultLocale,
			now:        time.Now,
		},
		logger: discardLogger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := VerifyPrerequisites(c.cfg.pipeline.Prerequisites()); err != nil {
		return nil, err
	}

	pipelineOpts := c.cfg.pipeline
	if pipelineOpts.Inliner.Enabled && pipelineOpts.Inliner.Path == Builtin && pipelineOpts.BuiltinInliner == nil {
		inliner, err := NewBrowserInliner(c.cfg.inlineStyle, c.cfg.timeout)
		if err != nil {
			return nil, fmt.Errorf("initializing builtin inliner: %w", err)
		}
		c.inliner = inliner
		pipelineOpts.BuiltinInliner = inliner
	}

	p, err := BuildPipeline(pipelineOpts)
	if err != nil {
		return nil, err
	}
	c.pipeline = p

	if c.publisher == nil {
		c.publisher = NewAppleScriptPublisher(DefaultBundleID)
	}

	c.logger.Debug("pipeline ready", "pipeline", p.String())
	return c, nil
}

// Pipeline returns the conversion pipeline.
func (c *Converter) Pipeline() *Pipeline {
	return c.pipeline
}

// Convert extracts metadata, renders the body and publishes the note.
//
// Stage failures are logged and the partial output is published, unless
// strict mode is on, in which case the error wrapping ErrStageFailed is
// returned and nothing is published. Publishing errors wrap ErrPublish.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Reader == nil {
		return nil, ErrNilInput
	}

	doc, err := c.extract(input.Reader)
	if err != nil {
		return nil, err
	}

	note := Note{
		Notebook:   doc.Metadata.NotebookValue(),
		Tags:       doc.Metadata.Tags,
		SourcePath: input.SourcePath,
	}

	runCtx := ctx
	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	html, pipelineErr := c.pipeline.Run(runCtx, doc.Body)
	if pipelineErr != nil {
		if c.cfg.strict || ctx.Err() != nil {
			return nil, pipelineErr
		}
		c.logger.Warn("pipeline failed, publishing partial output", "error", pipelineErr)
	}

	if c.cfg.rewritePaths && input.SourcePath != "" {
		rewritten, rewriteErr := pipeline.RewriteImagePaths(html, sourceDir(input.SourcePath))
		if rewriteErr != nil {
			c.logger.Warn("image paths not rewritten", "error", rewriteErr)
		} else {
			html = rewritten
		}
	}
	note.HTML = html

	// Resolved last so the fallback timestamp is the publication time.
	note.Title = ResolveTitle(doc.Metadata, doc.Body, c.fallbackTitle)

	id, err := c.publisher.CreateNote(ctx, note)
	if err != nil {
		if !errors.Is(err, ErrPublish) {
			err = fmt.Errorf("%w: %v", ErrPublish, err)
		}
		return nil, err
	}

	c.logger.Debug("note created", "id", string(id), "title", note.Title)
	return &Result{NoteID: id, Note: note, PipelineErr: pipelineErr}, nil
}

func (c *Converter) extract(r io.Reader) (*Document, error) {
	if c.cfg.frontmatter {
		return ExtractMetadataWithFrontmatter(r)
	}
	return ExtractMetadata(r)
}

// fallbackTitle formats the current time, falling back to the default
// format when the configured one is invalid.
func (c *Converter) fallbackTitle() string {
	now := c.cfg.now()
	title, err := FallbackTitle(now, c.cfg.dateFormat, c.cfg.locale)
	if err != nil {
		c.logger.Warn("invalid title date format, using default", "format", c.cfg.dateFormat, "error", err)
		title, _ = FallbackTitle(now, dateutil.DefaultDateTimeFormat, c.cfg.locale)
	}
	return title
}

// Close releases browser resources held by the built-in inliner.
func (c *Converter) Close() error {
	if c.inliner != nil {
		return c.inliner.Close()
	}
	return nil
}
