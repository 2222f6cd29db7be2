package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2evernote [command] [flags] [files...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create an Evernote note from Markdown read from files or standard input.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown to a note (default)")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  doctor      Check renderer, inliner, osascript and Chrome")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2evernote help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2evernote convert [flags] [files...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown to a note. Files are concatenated in order; with no")
	fmt.Fprintln(w, "files, or \"-\", standard input is read.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata (leading lines, up to the first blank line):")
	fmt.Fprintln(w, "  Title: <text>       or  # <text>")
	fmt.Fprintln(w, "  Keywords: <a, b>    or  @ <a, b>")
	fmt.Fprintln(w, "  Notebook: <name>    or  = <name>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show diagnostics and the created note")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "  -r, --renderer <path>     Markdown renderer, or \"builtin\"")
	fmt.Fprintln(w, "      --renderer-arg <s>    Extra renderer argument (repeatable)")
	fmt.Fprintln(w, "      --smart               Enable smart typography")
	fmt.Fprintln(w, "      --no-smart            Disable smart typography")
	fmt.Fprintln(w, "      --typography <path>   Standalone typography processor")
	fmt.Fprintln(w, "  -i, --inliner <path>      CSS inliner, or \"builtin\" (headless Chrome)")
	fmt.Fprintln(w, "      --no-inline           Disable CSS inlining")
	fmt.Fprintln(w, "  -s, --style <name>        Built-in inliner style name or CSS file")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Pipeline timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "      --strict              Fail instead of publishing partial output")
	fmt.Fprintln(w, "      --rewrite-paths       Turn relative image paths into file:// URLs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata and title:")
	fmt.Fprintln(w, "      --frontmatter         Also read YAML (---) or TOML (+++) frontmatter")
	fmt.Fprintln(w, "      --date-format <s>     Fallback title format or preset")
	fmt.Fprintln(w, "                            Tokens: YYYY, MMMM, MMM, MM, D, dddd, HH, h, mm, A")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long, iso-time, long-time")
	fmt.Fprintln(w, "      --locale <s>          Fallback title locale (default from LANG)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Publishing:")
	fmt.Fprintln(w, "  -n, --dry-run             Print the note instead of creating it")
	fmt.Fprintln(w, "      --bundle-id <id>      Target application (default com.evernote.Evernote)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2EVERNOTE_CONFIG, MD2EVERNOTE_RENDERER, MD2EVERNOTE_INLINER,")
	fmt.Fprintln(w, "  MD2EVERNOTE_STYLE, MD2EVERNOTE_TIMEOUT, MD2EVERNOTE_PUBLISHER,")
	fmt.Fprintln(w, "  MD2EVERNOTE_BUNDLE_ID, MD2EVERNOTE_DATE_FORMAT, MD2EVERNOTE_LOCALE,")
	fmt.Fprintln(w, "  MD2EVERNOTE_STRICT")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage, 3 input, 4 missing program (silent")
	fmt.Fprintln(w, "  without --verbose), 5 note creation, 6 pipeline failure")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  md2evernote notes.md")
	fmt.Fprintln(w, "  pbpaste | md2evernote --smart")
	fmt.Fprintln(w, "  md2evernote --renderer builtin --inliner builtin --dry-run notes.md")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2evernote config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration: defaults, then the config file,")
	fmt.Fprintln(w, "then MD2EVERNOTE_* variables.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: yaml, toml (default yaml)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2evernote doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the configured renderer, typography processor and inliner")
	fmt.Fprintln(w, "are executable, and look for osascript and Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Output as JSON")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version", "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
