package md2evernote

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// dryRunPrefix starts every NoteID returned by WriterPublisher.
const dryRunPrefix = "dry-run:"

// WriterPublisher writes notes to an io.Writer instead of creating them.
// The output starts with metadata lines in the input syntax, so it can be
// fed back to the converter.
type WriterPublisher struct {
	W io.Writer
}

// Compile-time interface check.
var _ NotePublisher = (*WriterPublisher)(nil)

// CreateNote writes the note and returns a random dry-run id.
func (p *WriterPublisher) CreateNote(ctx context.Context, note Note) (NoteID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", note.Title)
	if note.Notebook != "" {
		fmt.Fprintf(&b, "Notebook: %s\n", note.Notebook)
	}
	if len(note.Tags) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(note.Tags, ", "))
	}
	b.WriteString("\n")
	b.WriteString(note.HTML)
	if !strings.HasSuffix(note.HTML, "\n") {
		b.WriteString("\n")
	}

	if _, err := io.WriteString(p.W, b.String()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return NoteID(dryRunPrefix + uuid.NewString()), nil
}
