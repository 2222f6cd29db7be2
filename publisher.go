package md2evernote

import "context"

// NoteID identifies a created note. Its form depends on the publisher:
// an evernote:// link for AppleScriptPublisher, "dry-run:<uuid>" for
// WriterPublisher.
type NoteID string

// Note is a request to create one note.
type Note struct {
	Title    string
	Notebook string   // Empty = the application's default notebook
	Tags     []string // Nil = no tags
	HTML     string
	// SourcePath is the input file when there is exactly one, for logs.
	SourcePath string
}

// NotePublisher creates notes in a note-taking application.
type NotePublisher interface {
	CreateNote(ctx context.Context, note Note) (NoteID, error)
}
