package main

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2evernote/internal/config"
)

// envPrefix starts every variable read by the CLI.
const envPrefix = "MD2EVERNOTE_"

// envConfig holds configuration from environment variables.
// Provides overrides for scripts and launchers without a config file.
type envConfig struct {
	ConfigPath string        // MD2EVERNOTE_CONFIG: config file name or path
	Renderer   string        // MD2EVERNOTE_RENDERER: renderer path or "builtin"
	Inliner    string        // MD2EVERNOTE_INLINER: inliner path or "builtin"
	Style      string        // MD2EVERNOTE_STYLE: built-in inliner style
	Timeout    time.Duration // MD2EVERNOTE_TIMEOUT: pipeline timeout
	Publisher  string        // MD2EVERNOTE_PUBLISHER: applescript or stdout
	BundleID   string        // MD2EVERNOTE_BUNDLE_ID: target application
	DateFormat string        // MD2EVERNOTE_DATE_FORMAT: fallback title format
	Locale     string        // MD2EVERNOTE_LOCALE: fallback title locale
	Strict     *bool         // MD2EVERNOTE_STRICT: abort on stage failure
}

// knownEnvVars lists valid MD2EVERNOTE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2EVERNOTE_CONFIG":      true,
	"MD2EVERNOTE_RENDERER":    true,
	"MD2EVERNOTE_INLINER":     true,
	"MD2EVERNOTE_STYLE":       true,
	"MD2EVERNOTE_TIMEOUT":     true,
	"MD2EVERNOTE_PUBLISHER":   true,
	"MD2EVERNOTE_BUNDLE_ID":   true,
	"MD2EVERNOTE_DATE_FORMAT": true,
	"MD2EVERNOTE_LOCALE":      true,
	"MD2EVERNOTE_STRICT":      true,
}

// loadEnvConfig reads MD2EVERNOTE_* variables. Unparsable timeout and
// strict values are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2EVERNOTE_CONFIG"),
		Renderer:   getenv("MD2EVERNOTE_RENDERER"),
		Inliner:    getenv("MD2EVERNOTE_INLINER"),
		Style:      getenv("MD2EVERNOTE_STYLE"),
		Publisher:  getenv("MD2EVERNOTE_PUBLISHER"),
		BundleID:   getenv("MD2EVERNOTE_BUNDLE_ID"),
		DateFormat: getenv("MD2EVERNOTE_DATE_FORMAT"),
		Locale:     getenv("MD2EVERNOTE_LOCALE"),
	}

	if timeout := getenv("MD2EVERNOTE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if strict := getenv("MD2EVERNOTE_STRICT"); strict != "" {
		if b, err := strconv.ParseBool(strict); err == nil {
			cfg.Strict = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized MD2EVERNOTE_*
// variable. Helps catch typos like MD2EVERNOTE_RENDER.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides config file values with the variables that are
// set. CLI flags are applied afterwards by mergeFlags, giving the order
// flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Renderer != "" {
		cfg.Renderer.Path = env.Renderer
	}
	if env.Inliner != "" {
		cfg.Inliner.Path = env.Inliner
		cfg.Inliner.Enabled = true
	}
	if env.Style != "" {
		cfg.Inliner.Style = env.Style
	}
	if env.Timeout > 0 {
		cfg.Pipeline.Timeout = env.Timeout.String()
	}
	if env.Publisher != "" {
		cfg.Publisher.Kind = env.Publisher
	}
	if env.BundleID != "" {
		cfg.Publisher.BundleID = env.BundleID
	}
	if env.DateFormat != "" {
		cfg.Title.DateFormat = env.DateFormat
	}
	if env.Locale != "" {
		cfg.Title.Locale = env.Locale
	}
	if env.Strict != nil {
		cfg.Pipeline.Strict = *env.Strict
	}
}
