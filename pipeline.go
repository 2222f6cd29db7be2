package md2evernote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/alnah/go-md2evernote/internal/pipeline"
	"github.com/alnah/go-md2evernote/internal/process"
)

// Builtin selects the in-process implementation of the renderer or
// inliner stage instead of an external program.
const Builtin = "builtin"

// maxStderrSize caps the stderr kept from a failing stage.
const maxStderrSize = 64 * 1024

// Stage is one step of the conversion pipeline. It reads its input from
// stdin until EOF and writes its output to stdout.
type Stage interface {
	Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error
	String() string
}

// Compile-time interface checks.
var (
	_ Stage = CommandStage{}
	_ Stage = FuncStage{}
)

// CommandStage runs an external program. Program and Args are passed to
// the operating system directly; no shell is involved.
type CommandStage struct {
	Program string
	Args    []string
}

// Run executes the program with stdin and stdout attached. The process
// runs in its own group so cancellation also stops its children.
func (s CommandStage) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	if s.Program == "" {
		return ErrEmptyStage
	}

	cmd := exec.CommandContext(ctx, s.Program, s.Args...) // #nosec G204 -- program comes from user configuration
	process.Configure(cmd)

	stderr := &limitedBuffer{max: maxStderrSize}
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return &StageError{Stage: s.String(), Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}

// String renders the stage as a shell-like command line for logs.
func (s CommandStage) String() string {
	parts := make([]string, 0, len(s.Args)+1)
	parts = append(parts, shellQuote(s.Program))
	for _, arg := range s.Args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// FuncStage adapts an in-process string transformation to a Stage.
type FuncStage struct {
	Name      string
	Transform func(ctx context.Context, input string) (string, error)
}

// Run reads all input, transforms it and writes the result.
func (s FuncStage) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	input, err := io.ReadAll(stdin)
	if err != nil {
		return &StageError{Stage: s.String(), Err: err}
	}
	output, err := s.Transform(ctx, string(input))
	if err != nil {
		return &StageError{Stage: s.String(), Err: err}
	}
	if _, err := io.WriteString(stdout, output); err != nil {
		return &StageError{Stage: s.String(), Err: err}
	}
	return nil
}

// String returns the stage name in angle brackets.
func (s FuncStage) String() string {
	return "<" + s.Name + ">"
}

// RendererOptions configures the Markdown to HTML stage.
type RendererOptions struct {
	// Path is the renderer executable, or Builtin for goldmark.
	Path string
	// Args are passed before the typography flag.
	Args []string
	// HighlightStyle names the chroma style of the built-in renderer.
	HighlightStyle string
}

// TypographyOptions configures smart typography.
//
// With Path empty ("extension mode") the renderer receives ExtensionOn
// when Enabled and ExtensionOff otherwise. With Path set ("external
// mode") the renderer receives no flag and the program at Path runs
// after it when Enabled.
type TypographyOptions struct {
	Enabled      bool
	ExtensionOn  string
	ExtensionOff string
	Path         string
}

// InlinerOptions configures the CSS inliner stage.
type InlinerOptions struct {
	Enabled bool
	// Path is the inliner executable, or Builtin for headless Chrome.
	Path string
}

// PipelineOptions describes the conversion pipeline.
type PipelineOptions struct {
	Renderer   RendererOptions
	Typography TypographyOptions
	Inliner    InlinerOptions
	// BuiltinInliner serves the inliner stage when Inliner.Path is Builtin.
	BuiltinInliner HTMLInliner
}

// HTMLInliner moves stylesheet rules into style attributes.
type HTMLInliner interface {
	Inline(ctx context.Context, html string) (string, error)
}

// Pipeline is an ordered, immutable list of stages.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline running stages in order.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: append([]Stage(nil), stages...)}
}

// Stages returns a copy of the pipeline stages.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// String renders the pipeline as a shell-like command line for logs.
func (p *Pipeline) String() string {
	parts := make([]string, len(p.stages))
	for i, s := range p.stages {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}

// BuildPipeline assembles the renderer, typography and inliner stages
// in that fixed order.
func BuildPipeline(opts PipelineOptions) (*Pipeline, error) {
	extensionMode := opts.Typography.Path == ""
	var stages []Stage

	switch opts.Renderer.Path {
	case "":
		return nil, fmt.Errorf("%w: renderer path is empty", ErrInvalidPipeline)
	case Builtin:
		conv := pipeline.NewGoldmarkConverter(pipeline.GoldmarkOptions{
			Typographer:    extensionMode && opts.Typography.Enabled,
			HighlightStyle: opts.Renderer.HighlightStyle,
		})
		stages = append(stages, FuncStage{Name: "builtin renderer", Transform: conv.ToHTML})
	default:
		args := append([]string(nil), opts.Renderer.Args...)
		if extensionMode {
			flag := opts.Typography.ExtensionOff
			if opts.Typography.Enabled {
				flag = opts.Typography.ExtensionOn
			}
			if flag != "" {
				args = append(args, flag)
			}
		}
		stages = append(stages, CommandStage{Program: opts.Renderer.Path, Args: args})
	}

	if !extensionMode && opts.Typography.Enabled {
		stages = append(stages, CommandStage{Program: opts.Typography.Path})
	}

	if opts.Inliner.Enabled {
		switch opts.Inliner.Path {
		case "":
			return nil, fmt.Errorf("%w: inliner is enabled without a path", ErrInvalidPipeline)
		case Builtin:
			if opts.BuiltinInliner == nil {
				return nil, fmt.Errorf("%w: builtin inliner is not available", ErrInvalidPipeline)
			}
			stages = append(stages, FuncStage{Name: "builtin inliner", Transform: opts.BuiltinInliner.Inline})
		default:
			stages = append(stages, CommandStage{Program: opts.Inliner.Path})
		}
	}

	return NewPipeline(stages...), nil
}

// shellQuote single-quotes s when it contains characters a POSIX shell
// would interpret.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`|&;<>()*?[]#~!{}") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// limitedBuffer keeps the first max bytes written and discards the rest.
type limitedBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	return b.buf.String()
}
