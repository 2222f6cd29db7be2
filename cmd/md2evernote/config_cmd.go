package main

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2evernote/internal/codec"
)

// configFlags holds flags for the config command.
type configFlags struct {
	common commonFlags
	format string
}

// runConfigCmd prints the configuration convert would start from,
// before CLI flags are merged.
func runConfigCmd(args []string, env *Environment) int {
	f := &configFlags{}
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printConfigUsage(env.Stderr) }
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.format, "format", "f", string(codec.FormatYAML), "output format: yaml, toml")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	if err := printEffectiveConfig(f, env); err != nil {
		fmt.Fprintln(env.Stderr, "error: "+err.Error()+hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func printEffectiveConfig(f *configFlags, env *Environment) error {
	envCfg := loadEnvConfig(env.getenv)

	cfg, err := loadConfig(f.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := codec.Marshal(codec.Format(strings.ToLower(f.format)), cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
