package md2evernote

import (
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestExtractMetadataWithFrontmatter - Frontmatter seeding
// ---------------------------------------------------------------------------

func TestExtractMetadataWithFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantTitle    string
		wantTags     []string
		wantNotebook string
		wantBody     string
	}{
		{
			name:         "yaml frontmatter with tag list",
			input:        "---\ntitle: Trip notes\ntags: [travel, japan]\nnotebook: Journal\n---\n\nDay one.\n",
			wantTitle:    "Trip notes",
			wantTags:     []string{"travel", "japan"},
			wantNotebook: "Journal",
			wantBody:     "Day one.\n",
		},
		{
			name:      "keywords string",
			input:     "---\ntitle: T\nkeywords: a, b\n---\n\nbody\n",
			wantTitle: "T",
			wantTags:  []string{"a", "b"},
			wantBody:  "body\n",
		},
		{
			name:      "toml frontmatter",
			input:     "+++\ntitle = \"From TOML\"\n+++\n\nbody\n",
			wantTitle: "From TOML",
			wantBody:  "body\n",
		},
		{
			name:         "line metadata overrides frontmatter",
			input:        "---\ntitle: Old\nnotebook: Inbox\n---\nTitle: New\n\nbody\n",
			wantTitle:    "New",
			wantNotebook: "Inbox",
			wantBody:     "body\n",
		},
		{
			name:      "no frontmatter behaves like line metadata",
			input:     "Title: Plain\n\nbody\n",
			wantTitle: "Plain",
			wantBody:  "body\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := ExtractMetadataWithFrontmatter(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ExtractMetadataWithFrontmatter() error = %v", err)
			}
			if got := doc.Metadata.TitleValue(); got != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got, tt.wantTitle)
			}
			if !slices.Equal(doc.Metadata.Tags, tt.wantTags) {
				t.Errorf("Tags = %q, want %q", doc.Metadata.Tags, tt.wantTags)
			}
			if got := doc.Metadata.NotebookValue(); got != tt.wantNotebook {
				t.Errorf("Notebook = %q, want %q", got, tt.wantNotebook)
			}
			// Blank lines between the frontmatter and the text are not significant.
			if got := strings.TrimLeft(doc.Body, "\n"); got != tt.wantBody {
				t.Errorf("Body = %q, want %q", doc.Body, tt.wantBody)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExtractMetadataWithFrontmatter_NotOnFirstLine - Body kept verbatim
// ---------------------------------------------------------------------------

func TestExtractMetadataWithFrontmatter_NotOnFirstLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "leading blank line before yaml block", input: "\n---\ntitle: X\n---\nbody\n"},
		{name: "leading blank line before toml block", input: "\n+++\ntitle = \"X\"\n+++\nbody\n"},
		{name: "delimiter followed by text", input: "---- rule\n\nbody\n"},
		{name: "empty input", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := ExtractMetadataWithFrontmatter(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ExtractMetadataWithFrontmatter() error = %v", err)
			}
			if doc.Metadata.Title != nil {
				t.Errorf("Title = %q, want unset", *doc.Metadata.Title)
			}
			if doc.Body != tt.input {
				t.Errorf("Body = %q, want %q", doc.Body, tt.input)
			}
		})
	}
}
