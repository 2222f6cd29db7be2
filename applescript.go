package md2evernote

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-md2evernote/internal/fileutil"
)

// DefaultBundleID is the Evernote application bundle identifier.
const DefaultBundleID = "com.evernote.Evernote"

// OsascriptPath is the macOS script runner.
const OsascriptPath = "/usr/bin/osascript"

// missingValue is what AppleScript prints for an absent result.
const missingValue = "missing value"

// createNoteScript creates a note from arguments: HTML file path, title,
// notebook (empty for default), then tags. The %s is the quoted bundle id.
const createNoteScript = `on run argv
	set htmlPath to item 1 of argv
	set noteTitle to item 2 of argv
	set notebookName to item 3 of argv
	set tagList to {}
	if (count of argv) > 3 then set tagList to items 4 thru -1 of argv
	set noteHTML to read (POSIX file htmlPath) as «class utf8»
	tell application id %s
		if notebookName is "" then
			set n to create note with html noteHTML title noteTitle tags tagList
		else
			set n to create note with html noteHTML title noteTitle notebook notebookName tags tagList
		end if
		return note link of n
	end tell
end run`

// AppleScriptPublisher creates notes in Evernote through osascript.
// Only available on macOS.
type AppleScriptPublisher struct {
	// BundleID targets the application; empty uses DefaultBundleID.
	BundleID string
	// Osascript is the script runner path; empty uses /usr/bin/osascript.
	Osascript string
	Runner    CommandRunner
}

// Compile-time interface check.
var _ NotePublisher = (*AppleScriptPublisher)(nil)

// NewAppleScriptPublisher creates a publisher for the given bundle id.
func NewAppleScriptPublisher(bundleID string) *AppleScriptPublisher {
	return &AppleScriptPublisher{BundleID: bundleID, Runner: &ExecRunner{}}
}

// CreateNote sends the note to the application and returns its note link.
// The HTML travels through a temporary file so its size is not bounded by
// argument limits.
func (p *AppleScriptPublisher) CreateNote(ctx context.Context, note Note) (NoteID, error) {
	htmlPath, cleanup, err := fileutil.WriteTempFile(note.HTML, "html")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublish, err)
	}
	defer cleanup()

	runner := p.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}

	stdout, stderr, err := runner.Run(ctx, p.osascript(), p.args(htmlPath, note)...)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return "", fmt.Errorf("%w: %v: %s", ErrPublish, err, msg)
		}
		return "", fmt.Errorf("%w: %v", ErrPublish, err)
	}

	link := strings.TrimSpace(stdout)
	if link == missingValue {
		link = ""
	}
	return NoteID(link), nil
}

func (p *AppleScriptPublisher) osascript() string {
	if p.Osascript != "" {
		return p.Osascript
	}
	return OsascriptPath
}

// args builds the osascript command line: one -e per script line, then
// the run handler arguments.
func (p *AppleScriptPublisher) args(htmlPath string, note Note) []string {
	bundleID := p.BundleID
	if bundleID == "" {
		bundleID = DefaultBundleID
	}
	script := fmt.Sprintf(createNoteScript, appleScriptString(bundleID))

	lines := strings.Split(script, "\n")
	args := make([]string, 0, 2*len(lines)+3+len(note.Tags))
	for _, line := range lines {
		args = append(args, "-e", line)
	}
	args = append(args, htmlPath, note.Title, note.Notebook)
	args = append(args, note.Tags...)
	return args
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
