package md2evernote

import (
	"fmt"

	"github.com/alnah/go-md2evernote/internal/fileutil"
)

// Prerequisite is an external program the pipeline needs.
type Prerequisite struct {
	// Name identifies the role, e.g. "renderer", and matches the
	// configuration section that sets it.
	Name     string
	Path     string
	Required bool
}

// PrerequisiteError reports which prerequisite failed the check.
type PrerequisiteError struct {
	Prerequisite Prerequisite
	Err          error
}

func (e *PrerequisiteError) Error() string {
	return e.Prerequisite.Name + ": " + e.Err.Error()
}

func (e *PrerequisiteError) Unwrap() error {
	return e.Err
}

// CheckExecutable returns ErrMissingPrerequisite unless path names an
// existing regular file with execute permission. The path is used as is:
// no PATH lookup is done.
func CheckExecutable(path string) error {
	if !fileutil.IsExecutable(path) {
		return fmt.Errorf("%w: %q is not an executable file", ErrMissingPrerequisite, path)
	}
	return nil
}

// Prerequisites lists the external programs these options refer to.
// Built-in stages need no program and are not listed.
func (o PipelineOptions) Prerequisites() []Prerequisite {
	var prereqs []Prerequisite

	if o.Renderer.Path != Builtin {
		prereqs = append(prereqs, Prerequisite{Name: "renderer", Path: o.Renderer.Path, Required: true})
	}
	if o.Typography.Path != "" {
		prereqs = append(prereqs, Prerequisite{
			Name:     "typography",
			Path:     o.Typography.Path,
			Required: o.Typography.Enabled,
		})
	}
	if o.Inliner.Path != "" && o.Inliner.Path != Builtin {
		prereqs = append(prereqs, Prerequisite{
			Name:     "inliner",
			Path:     o.Inliner.Path,
			Required: o.Inliner.Enabled,
		})
	}

	return prereqs
}

// VerifyPrerequisites checks every required prerequisite and returns the
// first failure as a *PrerequisiteError naming the role that is missing.
func VerifyPrerequisites(prereqs []Prerequisite) error {
	for _, p := range prereqs {
		if !p.Required {
			continue
		}
		if err := CheckExecutable(p.Path); err != nil {
			return &PrerequisiteError{Prerequisite: p, Err: err}
		}
	}
	return nil
}
