package main

import (
	"errors"
	"os"

	md2evernote "github.com/alnah/go-md2evernote"
	"github.com/alnah/go-md2evernote/internal/assets"
	"github.com/alnah/go-md2evernote/internal/codec"
	"github.com/alnah/go-md2evernote/internal/config"
	"github.com/alnah/go-md2evernote/internal/dateutil"
)

// Exit codes for md2evernote CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess      = 0 // Note created
	ExitGeneral      = 1 // General/unexpected error
	ExitUsage        = 2 // Invalid flags, config, or validation
	ExitIO           = 3 // Input not found, permission denied
	ExitPrerequisite = 4 // Renderer, typography or inliner not executable
	ExitPublish      = 5 // Note creation failed
	ExitPipeline     = 6 // Stage failure in strict mode, browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Missing prerequisite (exit 4)
	if errors.Is(err, md2evernote.ErrMissingPrerequisite) {
		return ExitPrerequisite
	}

	// Publish errors (exit 5)
	if errors.Is(err, md2evernote.ErrPublish) {
		return ExitPublish
	}

	// Pipeline errors (exit 6)
	if errors.Is(err, md2evernote.ErrStageFailed) ||
		errors.Is(err, md2evernote.ErrBrowserConnect) ||
		errors.Is(err, md2evernote.ErrPageLoad) ||
		errors.Is(err, md2evernote.ErrInline) ||
		errors.Is(err, md2evernote.ErrHTMLConversion) {
		return ExitPipeline
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, md2evernote.ErrReadInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2evernote.ErrInvalidPipeline) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, codec.ErrUnsupportedFormat) ||
		errors.Is(err, ErrConflictingFlags) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
