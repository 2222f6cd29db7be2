package md2evernote

import "errors"

// Sentinel errors for library operations.
var (
	ErrMissingPrerequisite = errors.New("missing prerequisite")
	ErrReadInput           = errors.New("failed to read input")
	ErrStageFailed         = errors.New("pipeline stage failed")
	ErrEmptyStage          = errors.New("pipeline stage has no program")
	ErrInvalidPipeline     = errors.New("invalid pipeline options")
	ErrHTMLConversion      = errors.New("HTML conversion failed")
	ErrBrowserConnect      = errors.New("failed to connect to browser")
	ErrPageLoad            = errors.New("failed to load page")
	ErrInline              = errors.New("CSS inlining failed")
	ErrPublish             = errors.New("failed to create note")
	ErrNilInput            = errors.New("input reader cannot be nil")
)
