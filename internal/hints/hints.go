// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-md2evernote/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// GOOS is the platform hints are produced for. Tests override it.
var GOOS = runtime.GOOS

// ForBrowserConnect returns hints for browser connection errors raised by
// the built-in inliner. Detects CI/Docker and suggests relevant variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForMissingPrerequisite returns a hint naming the config key that points
// at the missing tool, and the built-in alternative when one exists.
func ForMissingPrerequisite(configKey string, hasBuiltin bool) string {
	hint := "check " + configKey + " points to an executable file"
	if hasBuiltin {
		hint += ", or set it to \"builtin\""
	}
	return format(hint)
}

// ForPublish returns hints for note creation failures.
func ForPublish() string {
	if GOOS != "darwin" {
		return format("Evernote automation requires macOS; use --dry-run to print the note")
	}
	return format("make sure Evernote is installed and allow automation in System Settings > Privacy & Security")
}

// ForTimeout returns a hint about increasing the pipeline timeout.
func ForTimeout() string {
	return format("for slow renderers, use --timeout or pipeline.timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2evernote/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2evernote") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
