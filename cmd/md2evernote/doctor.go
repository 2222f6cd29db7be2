package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	md2evernote "github.com/alnah/go-md2evernote"
	"github.com/alnah/go-md2evernote/internal/config"
	"github.com/alnah/go-md2evernote/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string      `json:"status"` // "ready", "warnings", "errors"
	Tools     []toolInfo  `json:"tools"`
	Publisher publishInfo `json:"publisher"`
	Chrome    chromeInfo  `json:"chrome"`
	Env       envInfo     `json:"environment"`
	System    systemInfo  `json:"system"`
	Warnings  []string    `json:"warnings,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
}

// toolInfo describes one configured pipeline program.
type toolInfo struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Required   bool   `json:"required"`
	Executable bool   `json:"executable"`
}

// publishInfo describes the note destination.
type publishInfo struct {
	Kind      string `json:"kind"`
	BundleID  string `json:"bundle_id,omitempty"`
	Osascript bool   `json:"osascript"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Needed  bool   `json:"needed"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	var common commonFlags
	var jsonOutput bool

	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	addCommonFlags(fs, &common)
	fs.BoolVar(&jsonOutput, "json", false, "output as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	envCfg := loadEnvConfig(env.getenv)
	cfg, err := loadConfig(common.config, envCfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, "error: "+err.Error()+hintFor(err))
		return exitCodeFor(err)
	}
	applyEnvConfig(envCfg, cfg)

	result := runDoctor(cfg, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks against cfg.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkTools(result, cfg)
	checkPublisher(result, cfg)
	checkChrome(result, cfg)
	checkEnvironment(result, env)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkTools verifies the programs the pipeline would run.
func checkTools(result *doctorResult, cfg *config.Config) {
	for _, p := range pipelineOptions(cfg).Prerequisites() {
		info := toolInfo{Name: p.Name, Path: p.Path, Required: p.Required}
		if err := md2evernote.CheckExecutable(p.Path); err == nil {
			info.Executable = true
		} else if p.Required {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s %s is not executable; check %s.path", p.Name, p.Path, p.Name))
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s %s is not executable (disabled, not needed now)", p.Name, p.Path))
		}
		result.Tools = append(result.Tools, info)
	}
}

// checkPublisher verifies the AppleScript bridge when it is the destination.
func checkPublisher(result *doctorResult, cfg *config.Config) {
	result.Publisher.Kind = cfg.Publisher.Kind
	if cfg.Publisher.Kind != config.PublisherAppleScript {
		return
	}

	result.Publisher.BundleID = cfg.Publisher.BundleID
	if fileutil.IsExecutable(md2evernote.OsascriptPath) {
		result.Publisher.Osascript = true
		return
	}

	if runtime.GOOS != "darwin" {
		result.Errors = append(result.Errors,
			"osascript is only available on macOS. Use --dry-run or publisher.kind: stdout")
		return
	}
	result.Errors = append(result.Errors,
		fmt.Sprintf("osascript not found at %s", md2evernote.OsascriptPath))
}

// checkChrome detects Chrome/Chromium. Missing Chrome is an error only
// when the built-in inliner is enabled.
func checkChrome(result *doctorResult, cfg *config.Config) {
	result.Chrome.Needed = cfg.Inliner.Enabled && cfg.Inliner.Path == config.Builtin

	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		// Use rod's launcher to locate Chrome
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			if result.Chrome.Needed {
				result.Errors = append(result.Errors,
					"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			}
			return
		}
	}

	// Verify it exists
	if _, err := os.Stat(chromePath); err != nil {
		if result.Chrome.Needed {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Chrome not found at %s", chromePath))
		}
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	if !result.Chrome.Needed {
		return
	}

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path from launcher or ROD_BROWSER_BIN
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// The sandbox only matters when Chrome will be launched.
	if result.Chrome.Needed && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(env *Environment) (bool, string) {
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := env.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if env.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used to hand HTML to osascript.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "md2evernote-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2evernote doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pipeline")
	if len(r.Tools) == 0 {
		fmt.Fprintln(w, "  [OK] Built-in stages only")
	}
	for _, tool := range r.Tools {
		switch {
		case tool.Executable:
			fmt.Fprintf(w, "  [OK] %s: %s\n", tool.Name, tool.Path)
		case tool.Required:
			fmt.Fprintf(w, "  [ERROR] %s: %s not executable\n", tool.Name, tool.Path)
		default:
			fmt.Fprintf(w, "  [WARN] %s: %s not executable (disabled)\n", tool.Name, tool.Path)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Publisher")
	switch {
	case r.Publisher.Kind != config.PublisherAppleScript:
		fmt.Fprintf(w, "  [OK] %s\n", r.Publisher.Kind)
	case r.Publisher.Osascript:
		fmt.Fprintf(w, "  [OK] osascript -> %s\n", r.Publisher.BundleID)
	default:
		fmt.Fprintln(w, "  [ERROR] osascript not available")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	switch {
	case r.Chrome.Found:
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
	case r.Chrome.Needed:
		fmt.Fprintln(w, "  [ERROR] Not found")
	default:
		fmt.Fprintln(w, "  [OK] Not needed (built-in inliner disabled)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to create notes")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
