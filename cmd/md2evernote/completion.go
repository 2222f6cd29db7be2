package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2evernote/internal/assets"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --renderer
	Short    string   // -r (empty if none)
	Bool     bool     // takes no value
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool // accepts markdown file arguments
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"config":      {FileGlob: "*.yaml,*.yml,*.toml"},
	"style":       {Values: assets.AvailableStyles(), FileGlob: "*.css"},
	"date-format": {Values: []string{"iso", "european", "us", "long", "iso-time", "long-time"}},
	"format":      {Values: []string{"yaml", "toml"}},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Bool:  f.Value.Type() == "bool",
			Desc:  f.Usage,
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			fd.Values = meta.Values
			fd.FileGlob = meta.FileGlob
		}
		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	convertFlags := extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}))

	var common commonFlags
	configSet := flag.NewFlagSet("config", flag.ContinueOnError)
	addCommonFlags(configSet, &common)
	configSet.StringP("format", "f", "", "output format: yaml, toml")

	doctorSet := flag.NewFlagSet("doctor", flag.ContinueOnError)
	addCommonFlags(doctorSet, &common)
	doctorSet.Bool("json", false, "output as JSON")

	return []commandDef{
		{Name: "convert", Desc: "Convert markdown to a note", Flags: convertFlags, TakesFiles: true},
		{Name: "config", Desc: "Print the effective configuration", Flags: extractFlagsFromFlagSet(configSet)},
		{Name: "doctor", Desc: "Check pipeline programs and publisher", Flags: extractFlagsFromFlagSet(doctorSet)},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2evernote completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2evernote completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2evernote completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2evernote completion fish > ~/.config/fish/completions/md2evernote.fish")
}

// commandNames joins command names with sep.
func commandNames(cmds []commandDef, sep string) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, sep)
}

// flagWords lists every --long and -short spelling of flags.
func flagWords(flags []flagDef) string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// bashMarkdownFiles completes .md and .markdown file names.
const bashMarkdownFiles = `$(compgen -f -X '!*.@(md|markdown)' -- "$cur")`

// generateBash writes a bash completion function.
func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# bash completion for md2evernote\n")
	b.WriteString("_md2evernote() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 && \"$cur\" != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\") %s)\n", commandNames(cmds, " "), bashMarkdownFiles)
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$prev\" in\n")
	seen := make(map[string]bool)
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] || (len(f.Values) == 0 && f.FileGlob == "") {
				continue
			}
			seen[f.Long] = true
			fmt.Fprintf(&b, "        --%s)\n", f.Long)
			if len(f.Values) > 0 {
				fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(f.Values, " "))
			} else {
				b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
			}
			b.WriteString("            return ;;\n")
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		files := ""
		if c.TakesFiles {
			files = " " + bashMarkdownFiles
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")%s)\n", flagWords(c.Flags), files)
		b.WriteString("            ;;\n")
	}
	b.WriteString("        completion)\n")
	b.WriteString("            COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n")
	b.WriteString("            ;;\n")
	b.WriteString("        *)\n")
	fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\") %s)\n", flagWords(cmds[0].Flags), bashMarkdownFiles)
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _md2evernote md2evernote\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes characters special inside _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("[", "\\[", "]", "\\]", ":", "\\:", "'", "'\\''")
	return r.Replace(s)
}

// generateZsh writes a zsh completion function.
func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef md2evernote\n\n")
	b.WriteString("_md2evernote() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files -g '*.(md|markdown)'\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			spec := "--" + f.Long
			if f.Short != "" {
				spec = fmt.Sprintf("(-%s --%s)'{-%s,--%s}'", f.Short, f.Long, f.Short, f.Long)
			}
			action := ""
			switch {
			case f.Bool:
			case len(f.Values) > 0:
				action = fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
			case f.FileGlob != "":
				action = ":file:_files"
			default:
				action = ":value:"
			}
			fmt.Fprintf(&b, "                '%s[%s]%s' \\\n", spec, zshEscape(f.Desc), action)
		}
		if c.TakesFiles {
			b.WriteString("                '*:markdown file:_files -g \"*.(md|markdown)\"'\n")
		} else {
			b.WriteString("                && return\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("        completion)\n")
	b.WriteString("            _values 'shell' bash zsh fish\n")
	b.WriteString("            ;;\n")
	b.WriteString("        help)\n")
	b.WriteString("            _describe 'command' commands\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2evernote md2evernote\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generateFish writes fish completions.
func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for md2evernote\n")
	fmt.Fprintf(&b, "set -l commands %s\n\n", commandNames(cmds, " "))
	b.WriteString("complete -c md2evernote -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2evernote -n \"not __fish_seen_subcommand_from $commands\" -a %s -d '%s'\n",
			c.Name, fishEscape(c.Desc))
	}
	b.WriteString("complete -c md2evernote -n \"not __fish_seen_subcommand_from $commands\" -F -a '(__fish_complete_suffix .md)'\n")

	for _, c := range cmds {
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2evernote -n \"__fish_seen_subcommand_from %s\" -l %s", c.Name, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch {
			case f.Bool:
			case len(f.Values) > 0:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case f.FileGlob != "":
				line += " -r -F"
			default:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c md2evernote -n \"__fish_seen_subcommand_from %s\" -F -a '(__fish_complete_suffix .md)'\n", c.Name)
		}
	}
	b.WriteString("complete -c md2evernote -n \"__fish_seen_subcommand_from completion\" -x -a 'bash zsh fish'\n")
	b.WriteString("complete -c md2evernote -n \"__fish_seen_subcommand_from help\" -x -a \"$commands\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape escapes single quotes for fish strings.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
