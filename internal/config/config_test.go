package config

// Notes:
// - TestLoadConfig_UserConfigDir relies on XDG_CONFIG_HOME, which
//   os.UserConfigDir only honors on Unix other than macOS.
// - The unreadable-file case is skipped when running as root, since root
//   ignores permission bits.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Renderer.Path != DefaultRendererPath {
		t.Errorf("Renderer.Path = %q, want %q", cfg.Renderer.Path, DefaultRendererPath)
	}
	if cfg.Typography.Enabled {
		t.Error("Typography.Enabled = true, want false")
	}
	if cfg.Typography.ExtensionOn != "--smart" || cfg.Typography.ExtensionOff != "--nosmart" {
		t.Errorf("Typography flags = %q/%q, want --smart/--nosmart",
			cfg.Typography.ExtensionOn, cfg.Typography.ExtensionOff)
	}
	if cfg.Typography.Path != "" {
		t.Errorf("Typography.Path = %q, want empty", cfg.Typography.Path)
	}
	if cfg.Inliner.Enabled {
		t.Error("Inliner.Enabled = true, want false")
	}
	if cfg.Publisher.Kind != PublisherAppleScript {
		t.Errorf("Publisher.Kind = %q, want %q", cfg.Publisher.Kind, PublisherAppleScript)
	}
	if cfg.Publisher.BundleID != "com.evernote.Evernote" {
		t.Errorf("Publisher.BundleID = %q, want com.evernote.Evernote", cfg.Publisher.BundleID)
	}
	if cfg.Pipeline.Strict {
		t.Error("Pipeline.Strict = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field checks
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "builtin renderer and inliner",
			modify: func(c *Config) { c.Renderer.Path = Builtin; c.Inliner = InlinerConfig{Enabled: true, Path: Builtin} },
		},
		{
			name:    "empty renderer path",
			modify:  func(c *Config) { c.Renderer.Path = "" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "renderer path too long",
			modify:  func(c *Config) { c.Renderer.Path = strings.Repeat("a", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "too many renderer args",
			modify:  func(c *Config) { c.Renderer.Args = make([]string, MaxArgs+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "renderer arg too long",
			modify:  func(c *Config) { c.Renderer.Args = []string{strings.Repeat("x", MaxArgLength+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "typography flag too long",
			modify:  func(c *Config) { c.Typography.ExtensionOn = strings.Repeat("-", MaxFlagLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "enabled inliner without path",
			modify:  func(c *Config) { c.Inliner.Enabled = true },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "disabled inliner without path",
			modify: func(c *Config) { c.Inliner = InlinerConfig{} },
		},
		{
			name:    "unknown publisher kind",
			modify:  func(c *Config) { c.Publisher.Kind = "smtp" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "stdout publisher",
			modify: func(c *Config) { c.Publisher.Kind = PublisherStdout },
		},
		{
			name:    "bundle id with quote",
			modify:  func(c *Config) { c.Publisher.BundleID = `com.evil" to quit` },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "date format too long",
			modify:  func(c *Config) { c.Title.DateFormat = strings.Repeat("Y", MaxDateFormatLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "invalid timeout",
			modify:  func(c *Config) { c.Pipeline.Timeout = "soon" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.Pipeline.Timeout = "-1s" },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_TimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"30s", 30 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"30", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Pipeline.Timeout = tt.timeout

			got, err := cfg.TimeoutDuration()
			if (err != nil) != tt.wantErr {
				t.Fatalf("TimeoutDuration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		configPath := writeConfig(t, "notes.yaml", `renderer:
  path: /usr/local/bin/pandoc
  args: ["-f", "markdown", "-t", "html"]
typography:
  enabled: true
publisher:
  kind: stdout
`)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Renderer.Path != "/usr/local/bin/pandoc" {
			t.Errorf("Renderer.Path = %q, want /usr/local/bin/pandoc", cfg.Renderer.Path)
		}
		if len(cfg.Renderer.Args) != 4 {
			t.Errorf("Renderer.Args = %v, want 4 args", cfg.Renderer.Args)
		}
		if !cfg.Typography.Enabled {
			t.Error("Typography.Enabled = false, want true")
		}
		if cfg.Typography.ExtensionOn != DefaultExtensionOn {
			t.Errorf("Typography.ExtensionOn = %q, want default %q", cfg.Typography.ExtensionOn, DefaultExtensionOn)
		}
		if cfg.Publisher.Kind != PublisherStdout {
			t.Errorf("Publisher.Kind = %q, want %q", cfg.Publisher.Kind, PublisherStdout)
		}
		if cfg.Publisher.BundleID != DefaultBundleID {
			t.Errorf("Publisher.BundleID = %q, want default %q", cfg.Publisher.BundleID, DefaultBundleID)
		}
	})

	t.Run("toml file", func(t *testing.T) {
		configPath := writeConfig(t, "notes.toml", `[renderer]
path = "builtin"

[inliner]
enabled = true
path = "builtin"
style = "plain"

[title]
locale = "fr_FR"
`)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Renderer.Path != Builtin {
			t.Errorf("Renderer.Path = %q, want %q", cfg.Renderer.Path, Builtin)
		}
		if !cfg.Inliner.Enabled || cfg.Inliner.Style != "plain" {
			t.Errorf("Inliner = %+v, want enabled with plain style", cfg.Inliner)
		}
		if cfg.Title.Locale != "fr_FR" {
			t.Errorf("Title.Locale = %q, want fr_FR", cfg.Title.Locale)
		}
		if cfg.Title.DateFormat != DefaultDateFormat {
			t.Errorf("Title.DateFormat = %q, want default %q", cfg.Title.DateFormat, DefaultDateFormat)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unsupported extension returns ErrConfigParse", func(t *testing.T) {
		configPath := writeConfig(t, "notes.json", `{}`)

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		configPath := writeConfig(t, "invalid.yaml", "renderer: [unclosed")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		configPath := writeConfig(t, "unknown.yaml", "renderer:\n  path: builtin\nwatermark: true\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		configPath := writeConfig(t, "kind.yaml", "publisher:\n  kind: email\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits not enforced")
		}
		configPath := writeConfig(t, "unreadable.yaml", "renderer:\n  path: builtin\n")
		if err := os.Chmod(configPath, 0o000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(configPath, 0o600)

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, should not be ErrConfigNotFound", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, "work.yml"), []byte("pipeline:\n  strict: true\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.Pipeline.Strict {
		t.Error("Pipeline.Strict = false, want true")
	}

	_, err = LoadConfig("missing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing.toml") {
		t.Errorf("error = %q, want tried paths listed", err.Error())
	}
}

func TestLoadConfig_UserConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" || runtime.GOOS == "plan9" {
		t.Skip("XDG_CONFIG_HOME is not used on this platform")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	appDir := filepath.Join(xdg, "go-md2evernote")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(appDir, "home.toml"), []byte("[metadata]\nfrontmatter = true\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := LoadConfig("home")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.Metadata.Frontmatter {
		t.Error("Metadata.Frontmatter = false, want true")
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
