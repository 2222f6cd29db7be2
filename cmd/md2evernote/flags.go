package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pipelineFlags holds renderer, typography and inliner flags.
type pipelineFlags struct {
	renderer     string
	rendererArgs []string
	typography   string
	smart        bool
	noSmart      bool
	inliner      string
	noInline     bool
	style        string
	timeout      string
	strict       bool
	rewritePaths bool
}

// publishFlags holds note destination flags.
type publishFlags struct {
	dryRun   bool
	bundleID string
}

// titleFlags holds fallback title flags.
type titleFlags struct {
	dateFormat string
	locale     string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	pipeline    pipelineFlags
	publish     publishFlags
	title       titleFlags
	frontmatter bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostics and the created note")
}

// addPipelineFlags adds pipeline flags to a FlagSet.
func addPipelineFlags(fs *flag.FlagSet, f *pipelineFlags) {
	fs.StringVarP(&f.renderer, "renderer", "r", "", "markdown renderer path or \"builtin\"")
	fs.StringArrayVar(&f.rendererArgs, "renderer-arg", nil, "extra renderer argument (repeatable)")
	fs.StringVar(&f.typography, "typography", "", "standalone typography processor path")
	fs.BoolVar(&f.smart, "smart", false, "enable smart typography")
	fs.BoolVar(&f.noSmart, "no-smart", false, "disable smart typography")
	fs.StringVarP(&f.inliner, "inliner", "i", "", "CSS inliner path or \"builtin\" (enables inlining)")
	fs.BoolVar(&f.noInline, "no-inline", false, "disable CSS inlining")
	fs.StringVarP(&f.style, "style", "s", "", "built-in inliner style name or CSS file")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "pipeline timeout (e.g. 30s, 2m)")
	fs.BoolVar(&f.strict, "strict", false, "fail instead of publishing partial output")
	fs.BoolVar(&f.rewritePaths, "rewrite-paths", false, "turn relative image paths into file:// URLs")
}

// addPublishFlags adds publishing flags to a FlagSet.
func addPublishFlags(fs *flag.FlagSet, f *publishFlags) {
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "print the note instead of creating it")
	fs.StringVar(&f.bundleID, "bundle-id", "", "target application bundle id")
}

// addTitleFlags adds fallback title flags to a FlagSet.
func addTitleFlags(fs *flag.FlagSet, f *titleFlags) {
	fs.StringVar(&f.dateFormat, "date-format", "", "fallback title date format or preset")
	fs.StringVar(&f.locale, "locale", "", "fallback title locale (e.g. fr_FR)")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by parseConvertFlags and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	addCommonFlags(fs, &f.common)
	addPipelineFlags(fs, &f.pipeline)
	addPublishFlags(fs, &f.publish)
	addTitleFlags(fs, &f.title)
	fs.BoolVar(&f.frontmatter, "frontmatter", false, "read metadata from YAML or TOML frontmatter")

	return fs
}

// parseConvertFlags parses convert flags and returns positional arguments.
// Usage and parse errors are written to w. Returns flag.ErrHelp for
// -h/--help.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
