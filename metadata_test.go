package md2evernote

// Notes:
// - The ErrReadInput branch is exercised with a reader that fails after
//   its first line; other read failures behave the same.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
)

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// TestExtractMetadata - Leading metadata block
// ---------------------------------------------------------------------------

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantTitle    *string
		wantTags     []string
		wantHasTags  bool
		wantNotebook *string
		wantBody     string
	}{
		{
			name:      "title key",
			input:     "Title: Foo\n\n# Other heading\n",
			wantTitle: strPtr("Foo"),
			wantBody:  "\n# Other heading\n",
		},
		{
			name:      "heading prefix sets title and is consumed",
			input:     "# Hello World\n\nText\n",
			wantTitle: strPtr("Hello World"),
			wantBody:  "\nText\n",
		},
		{
			name:        "keywords are split and trimmed",
			input:       "Keywords: a, b , c\n\nbody\n",
			wantTags:    []string{"a", "b", "c"},
			wantHasTags: true,
			wantBody:    "\nbody\n",
		},
		{
			name:        "at prefix with empty tokens dropped",
			input:       "@ work,, , home\n\n",
			wantTags:    []string{"work", "home"},
			wantHasTags: true,
			wantBody:    "\n",
		},
		{
			name:         "notebook key and equals prefix, last wins",
			input:        "Notebook: Inbox\n= Journal\n\nbody",
			wantNotebook: strPtr("Journal"),
			wantBody:     "\nbody",
		},
		{
			name:      "last title wins",
			input:     "Title: First\nTitle: Second\n\n",
			wantTitle: strPtr("Second"),
			wantBody:  "\n",
		},
		{
			name:      "unknown metadata passes through",
			input:     "Author: Jane\nTitle: T\n\ntext\n",
			wantTitle: strPtr("T"),
			wantBody:  "Author: Jane\n\ntext\n",
		},
		{
			name:     "leading blank line ends metadata immediately",
			input:    "\nTitle: ignored\n# still body\n",
			wantBody: "\nTitle: ignored\n# still body\n",
		},
		{
			name:      "single space line is blank",
			input:     "Title: T\n \nTitle: body\n",
			wantTitle: strPtr("T"),
			wantBody:  " \nTitle: body\n",
		},
		{
			name:         "only metadata lines yield empty body",
			input:        "Title: T\n@ x\n= N",
			wantTitle:    strPtr("T"),
			wantTags:     []string{"x"},
			wantHasTags:  true,
			wantNotebook: strPtr("N"),
			wantBody:     "",
		},
		{
			name:     "text without blank line stays body",
			input:    "just text\nmore text",
			wantBody: "just text\nmore text",
		},
		{
			name:     "second level heading is not a title",
			input:    "## Section\n\n",
			wantBody: "## Section\n\n",
		},
		{
			name:     "prefix without space is not metadata",
			input:    "#NoSpace\n@nospace\n\n",
			wantBody: "#NoSpace\n@nospace\n\n",
		},
		{
			name:      "crlf line endings",
			input:     "Title: Windows\r\n\r\nbody\r\n",
			wantTitle: strPtr("Windows"),
			wantBody:  "\r\nbody\r\n",
		},
		{
			name:      "empty title is recorded",
			input:     "Title: \n\n",
			wantTitle: strPtr(""),
			wantBody:  "\n",
		},
		{
			name:     "empty input",
			input:    "",
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := ExtractMetadata(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ExtractMetadata() error = %v", err)
			}

			if !equalPtr(doc.Metadata.Title, tt.wantTitle) {
				t.Errorf("Title = %v, want %v", deref(doc.Metadata.Title), deref(tt.wantTitle))
			}
			if doc.Metadata.HasTags != tt.wantHasTags {
				t.Errorf("HasTags = %v, want %v", doc.Metadata.HasTags, tt.wantHasTags)
			}
			if !slices.Equal(doc.Metadata.Tags, tt.wantTags) {
				t.Errorf("Tags = %q, want %q", doc.Metadata.Tags, tt.wantTags)
			}
			if !equalPtr(doc.Metadata.Notebook, tt.wantNotebook) {
				t.Errorf("Notebook = %v, want %v", deref(doc.Metadata.Notebook), deref(tt.wantNotebook))
			}
			if doc.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", doc.Body, tt.wantBody)
			}
		})
	}
}

func TestExtractMetadata_StopsAtBlankLine(t *testing.T) {
	t.Parallel()

	input := "Title: Kept\n\nTitle: Later\n@ later\n= Later\n"
	doc, err := ExtractMetadata(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ExtractMetadata() error = %v", err)
	}
	if got := doc.Metadata.TitleValue(); got != "Kept" {
		t.Errorf("Title = %q, want %q", got, "Kept")
	}
	if doc.Metadata.HasTags || doc.Metadata.Notebook != nil {
		t.Errorf("metadata after blank line was applied: %+v", doc.Metadata)
	}
	if doc.Body != "\nTitle: Later\n@ later\n= Later\n" {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestExtractMetadata_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil reader", func(t *testing.T) {
		t.Parallel()

		if _, err := ExtractMetadata(nil); !errors.Is(err, ErrNilInput) {
			t.Errorf("error = %v, want %v", err, ErrNilInput)
		}
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		r := io.MultiReader(strings.NewReader("Title: T\n"), iotest.ErrReader(errors.New("disk gone")))
		_, err := ExtractMetadata(r)
		if !errors.Is(err, ErrReadInput) {
			t.Errorf("error = %v, want %v", err, ErrReadInput)
		}
	})

	t.Run("read failure after blank line", func(t *testing.T) {
		t.Parallel()

		r := io.MultiReader(strings.NewReader("\nbody"), iotest.ErrReader(errors.New("disk gone")))
		_, err := ExtractMetadata(r)
		if !errors.Is(err, ErrReadInput) {
			t.Errorf("error = %v, want %v", err, ErrReadInput)
		}
	})
}

func TestMetadata_Values(t *testing.T) {
	t.Parallel()

	var empty Metadata
	if empty.TitleValue() != "" || empty.NotebookValue() != "" {
		t.Error("unset values should be empty")
	}

	set := Metadata{Title: strPtr("T"), Notebook: strPtr("N")}
	if set.TitleValue() != "T" || set.NotebookValue() != "N" {
		t.Errorf("values = %q/%q, want T/N", set.TitleValue(), set.NotebookValue())
	}
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
