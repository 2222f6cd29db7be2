package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2evernote/internal/codec"
	"github.com/alnah/go-md2evernote/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength       = 4096 // PATH_MAX on Linux
	MaxArgLength        = 1024 // Single renderer argument
	MaxArgs             = 64   // Renderer argument count
	MaxFlagLength       = 100  // "--smart", "--nosmart"
	MaxBundleIDLength   = 255  // Reverse-DNS application id
	MaxDateFormatLength = 50   // Matches dateutil.MaxDateFormatLength
	MaxLocaleLength     = 50   // "fr_FR.UTF-8"
	MaxStyleLength      = 4096 // Style name or CSS path
)

// Built-in component selectors.
const (
	// Builtin selects the in-process implementation of a stage.
	Builtin = "builtin"

	PublisherAppleScript = "applescript"
	PublisherStdout      = "stdout"
)

// Defaults.
const (
	DefaultRendererPath = "/opt/local/bin/multimarkdown"
	DefaultExtensionOn  = "--smart"
	DefaultExtensionOff = "--nosmart"
	DefaultBundleID     = "com.evernote.Evernote"
	DefaultDateFormat   = "long-time"
	DefaultInlineStyle  = "default"
)

// configDirName is the directory searched under os.UserConfigDir.
const configDirName = "go-md2evernote"

// configExtensions lists the file extensions tried when resolving a name.
var configExtensions = []string{".yaml", ".yml", ".toml"}

// Config holds all configuration for note conversion.
type Config struct {
	Renderer   RendererConfig   `yaml:"renderer" toml:"renderer"`
	Typography TypographyConfig `yaml:"typography" toml:"typography"`
	Inliner    InlinerConfig    `yaml:"inliner" toml:"inliner"`
	Publisher  PublisherConfig  `yaml:"publisher" toml:"publisher"`
	Title      TitleConfig      `yaml:"title" toml:"title"`
	Metadata   MetadataConfig   `yaml:"metadata" toml:"metadata"`
	Pipeline   PipelineConfig   `yaml:"pipeline" toml:"pipeline"`
}

// RendererConfig defines the Markdown to HTML stage.
type RendererConfig struct {
	Path string   `yaml:"path" toml:"path"` // Executable path, or "builtin" for goldmark
	Args []string `yaml:"args" toml:"args"` // Extra arguments before the typography flag
}

// TypographyConfig defines smart typography handling.
// With Path empty the renderer gets ExtensionOn or ExtensionOff as a
// flag; with Path set a separate processor runs after the renderer.
type TypographyConfig struct {
	Enabled      bool   `yaml:"enabled" toml:"enabled"`
	ExtensionOn  string `yaml:"extensionOn" toml:"extensionOn"`
	ExtensionOff string `yaml:"extensionOff" toml:"extensionOff"`
	Path         string `yaml:"path" toml:"path"`
}

// InlinerConfig defines the stylesheet to inline-styles stage.
type InlinerConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`   // Executable path, or "builtin" for headless Chrome
	Style   string `yaml:"style" toml:"style"` // Built-in inliner stylesheet: embedded name or .css path
}

// PublisherConfig defines where notes go.
type PublisherConfig struct {
	Kind     string `yaml:"kind" toml:"kind"`         // "applescript" or "stdout"
	BundleID string `yaml:"bundleID" toml:"bundleID"` // Target application bundle id
}

// TitleConfig defines the fallback title timestamp.
type TitleConfig struct {
	DateFormat string `yaml:"dateFormat" toml:"dateFormat"` // Preset or token format
	Locale     string `yaml:"locale" toml:"locale"`         // Empty = from LANG
}

// MetadataConfig defines optional metadata sources.
type MetadataConfig struct {
	Frontmatter bool `yaml:"frontmatter" toml:"frontmatter"`
}

// PipelineConfig defines execution behavior.
type PipelineConfig struct {
	Strict       bool   `yaml:"strict" toml:"strict"`             // Stage failures abort instead of degrading
	Timeout      string `yaml:"timeout" toml:"timeout"`           // Go duration; empty = none
	RewritePaths bool   `yaml:"rewritePaths" toml:"rewritePaths"` // Relative img src to file:// for file input
}

// TimeoutDuration parses Pipeline.Timeout. Empty means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Pipeline.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Pipeline.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pipeline.timeout: %v", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: pipeline.timeout: must not be negative, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Renderer.Path == "" {
		return fmt.Errorf("%w: renderer.path: required", ErrInvalidValue)
	}
	if err := validateFieldLength("renderer.path", c.Renderer.Path, MaxPathLength); err != nil {
		return err
	}
	if len(c.Renderer.Args) > MaxArgs {
		return fmt.Errorf("%w: renderer.args (%d args, max %d)", ErrFieldTooLong, len(c.Renderer.Args), MaxArgs)
	}
	for i, arg := range c.Renderer.Args {
		if err := validateFieldLength(fmt.Sprintf("renderer.args[%d]", i), arg, MaxArgLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("typography.extensionOn", c.Typography.ExtensionOn, MaxFlagLength); err != nil {
		return err
	}
	if err := validateFieldLength("typography.extensionOff", c.Typography.ExtensionOff, MaxFlagLength); err != nil {
		return err
	}
	if err := validateFieldLength("typography.path", c.Typography.Path, MaxPathLength); err != nil {
		return err
	}

	if c.Inliner.Enabled && c.Inliner.Path == "" {
		return fmt.Errorf("%w: inliner.path: required when inliner is enabled", ErrInvalidValue)
	}
	if err := validateFieldLength("inliner.path", c.Inliner.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("inliner.style", c.Inliner.Style, MaxStyleLength); err != nil {
		return err
	}

	switch c.Publisher.Kind {
	case "", PublisherAppleScript, PublisherStdout:
	default:
		return fmt.Errorf("%w: publisher.kind: %q (must be %s or %s)",
			ErrInvalidValue, c.Publisher.Kind, PublisherAppleScript, PublisherStdout)
	}
	if err := validateFieldLength("publisher.bundleID", c.Publisher.BundleID, MaxBundleIDLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Publisher.BundleID, "\"\\\n") {
		return fmt.Errorf("%w: publisher.bundleID: %q contains quotes, backslashes or newlines",
			ErrInvalidValue, c.Publisher.BundleID)
	}

	if err := validateFieldLength("title.dateFormat", c.Title.DateFormat, MaxDateFormatLength); err != nil {
		return err
	}
	if err := validateFieldLength("title.locale", c.Title.Locale, MaxLocaleLength); err != nil {
		return err
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// an external multimarkdown renderer, smart typography off, no inliner,
// notes sent to Evernote.
func DefaultConfig() *Config {
	return &Config{
		Renderer: RendererConfig{Path: DefaultRendererPath},
		Typography: TypographyConfig{
			Enabled:      false,
			ExtensionOn:  DefaultExtensionOn,
			ExtensionOff: DefaultExtensionOff,
		},
		Inliner: InlinerConfig{
			Enabled: false,
			Style:   DefaultInlineStyle,
		},
		Publisher: PublisherConfig{
			Kind:     PublisherAppleScript,
			BundleID: DefaultBundleID,
		},
		Title: TitleConfig{DateFormat: DefaultDateFormat},
	}
}

// LoadConfig loads a configuration by name or path.
// Names are searched in the working directory then in the user config
// directory with .yaml, .yml and .toml extensions. Fields absent from the
// file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) || filepath.Ext(nameOrPath) != "" {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	format, err := codec.FormatFromPath(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := codec.UnmarshalStrict(format, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath looks for name in the working directory, then in the
// user config directory.
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2)

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
