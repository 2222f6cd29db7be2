package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	md2evernote "github.com/alnah/go-md2evernote"
	"github.com/alnah/go-md2evernote/internal/assets"
	"github.com/alnah/go-md2evernote/internal/config"
	"github.com/alnah/go-md2evernote/internal/hints"
)

// commands lists the subcommand names. Anything else is convert input.
var commands = map[string]bool{
	"convert":    true,
	"config":     true,
	"doctor":     true,
	"completion": true,
	"version":    true,
	"help":       true,
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// runMain dispatches args (including the program name) and returns the
// exit code. Without a command, arguments are passed to convert, so
// "md2evernote notes.md" and "cat notes.md | md2evernote" both work.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	if len(args) > 0 {
		switch args[0] {
		case "--version":
			args = append([]string{"version"}, args[1:]...)
		case "-h", "--help":
			args = append([]string{"help"}, args[1:]...)
		}
	}
	if len(args) == 0 || !isCommand(args[0]) {
		return runConvertCmd(args, env)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "config":
		return runConfigCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, "error:", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "version":
		fmt.Fprintf(env.Stdout, "md2evernote %s\n", Version)
		return ExitSuccess
	default: // help
		return runHelp(rest, env)
	}
}

// runConvertCmd parses convert flags, runs the conversion under a signal
// context and reports errors.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	logger := newLogger(env, flags.common)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = runConvert(ctx, positional, flags, env, logger)
	if err != nil {
		reportError(env, err, flags.common.verbose)
	}
	return exitCodeFor(err)
}

// newLogger returns a text logger on stderr: Info by default, Debug with
// --verbose, Error only with --quiet.
func newLogger(env *Environment, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}

// reportError prints err with an actionable hint. A missing prerequisite
// aborts silently unless verbose is set.
func reportError(env *Environment, err error, verbose bool) {
	if errors.Is(err, md2evernote.ErrMissingPrerequisite) && !verbose {
		return
	}
	fmt.Fprintln(env.Stderr, "error: "+err.Error()+hintFor(err))
}

// hintFor returns the hint matching err, or an empty string.
func hintFor(err error) string {
	var prereqErr *md2evernote.PrerequisiteError
	switch {
	case errors.As(err, &prereqErr):
		hasBuiltin := prereqErr.Prerequisite.Name != "typography"
		return hints.ForMissingPrerequisite(prereqErr.Prerequisite.Name+".path", hasBuiltin)
	case errors.Is(err, md2evernote.ErrPublish):
		return hints.ForPublish()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2evernote.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.AvailableStyles())
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigPaths())
	}
	return ""
}

// userConfigPaths lists where a default config would be found.
func userConfigPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-md2evernote", "default.yaml")}
}
