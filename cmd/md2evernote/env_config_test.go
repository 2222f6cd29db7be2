package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2evernote/internal/config"
)

func mapGetenv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Parsing MD2EVERNOTE_* variables
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	env := loadEnvConfig(mapGetenv(map[string]string{
		"MD2EVERNOTE_CONFIG":   "work",
		"MD2EVERNOTE_RENDERER": "builtin",
		"MD2EVERNOTE_TIMEOUT":  "90s",
		"MD2EVERNOTE_STRICT":   "1",
		"MD2EVERNOTE_LOCALE":   "de_DE",
	}))

	if env.ConfigPath != "work" {
		t.Errorf("ConfigPath = %q, want %q", env.ConfigPath, "work")
	}
	if env.Renderer != "builtin" {
		t.Errorf("Renderer = %q, want %q", env.Renderer, "builtin")
	}
	if env.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want %v", env.Timeout, 90*time.Second)
	}
	if env.Strict == nil || !*env.Strict {
		t.Errorf("Strict = %v, want true", env.Strict)
	}
	if env.Locale != "de_DE" {
		t.Errorf("Locale = %q, want %q", env.Locale, "de_DE")
	}
}

func TestLoadEnvConfig_InvalidValuesIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
	}{
		{"unparsable timeout", map[string]string{"MD2EVERNOTE_TIMEOUT": "later"}},
		{"negative timeout", map[string]string{"MD2EVERNOTE_TIMEOUT": "-5s"}},
		{"unparsable strict", map[string]string{"MD2EVERNOTE_STRICT": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := loadEnvConfig(mapGetenv(tt.vars))
			if env.Timeout != 0 {
				t.Errorf("Timeout = %v, want 0", env.Timeout)
			}
			if env.Strict != nil {
				t.Errorf("Strict = %v, want nil", *env.Strict)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env vars override the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	strict := false
	cfg := config.DefaultConfig()
	cfg.Pipeline.Strict = true

	applyEnvConfig(&envConfig{
		Inliner:    "builtin",
		Style:      "plain",
		Timeout:    2 * time.Minute,
		Publisher:  config.PublisherStdout,
		BundleID:   "com.example.Notes",
		DateFormat: "iso",
		Strict:     &strict,
	}, cfg)

	if !cfg.Inliner.Enabled || cfg.Inliner.Path != "builtin" || cfg.Inliner.Style != "plain" {
		t.Errorf("Inliner = %+v", cfg.Inliner)
	}
	if cfg.Pipeline.Timeout != "2m0s" {
		t.Errorf("Pipeline.Timeout = %q, want %q", cfg.Pipeline.Timeout, "2m0s")
	}
	if cfg.Pipeline.Strict {
		t.Error("Pipeline.Strict = true, want false from env")
	}
	if cfg.Publisher.Kind != config.PublisherStdout || cfg.Publisher.BundleID != "com.example.Notes" {
		t.Errorf("Publisher = %+v", cfg.Publisher)
	}
	if cfg.Title.DateFormat != "iso" {
		t.Errorf("Title.DateFormat = %q, want %q", cfg.Title.DateFormat, "iso")
	}
	// Unset variables leave the file values alone.
	if cfg.Renderer.Path != config.DefaultRendererPath {
		t.Errorf("Renderer.Path = %q, want %q", cfg.Renderer.Path, config.DefaultRendererPath)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	warnUnknownEnvVars(logger, []string{
		"MD2EVERNOTE_RENDERER=builtin",
		"MD2EVERNOTE_INLINE=builtin",
		"PATH=/usr/bin",
	})

	out := buf.String()
	if !strings.Contains(out, "MD2EVERNOTE_INLINE") {
		t.Errorf("output = %q, want warning for MD2EVERNOTE_INLINE", out)
	}
	if strings.Contains(out, "MD2EVERNOTE_RENDERER") || strings.Contains(out, "PATH") {
		t.Errorf("output = %q, want warnings only for unknown variables", out)
	}
}
