package md2evernote

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestHeadingTitle - First level-one heading
// ---------------------------------------------------------------------------

func TestHeadingTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{"simple heading", "# Hello World\n", "Hello World", true},
		{"heading after text", "intro\n\n# Topic\nmore", "Topic", true},
		{"closing hashes dropped", "# Closed #\n", "Closed", true},
		{"no space after hash", "#Tight\n", "Tight", true},
		{"first of several", "# One\n# Two\n", "One", true},
		{"second level ignored", "## Sub\n", "", false},
		{"empty heading skipped", "# \n#   \n# Real\n", "Real", true},
		{"crlf endings", "# Windows\r\nbody\r\n", "Windows", true},
		{"indented heading ignored", "  # Indented\n", "", false},
		{"no heading", "plain text\n", "", false},
		{"empty body", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := HeadingTitle(tt.body)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("HeadingTitle(%q) = (%q, %v), want (%q, %v)", tt.body, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveTitle - Title precedence
// ---------------------------------------------------------------------------

func TestResolveTitle(t *testing.T) {
	t.Parallel()

	const fallback = "October 19, 2026 at 9:30 AM"

	tests := []struct {
		name         string
		meta         Metadata
		body         string
		want         string
		wantFallback bool
	}{
		{
			name: "explicit title beats heading",
			meta: Metadata{Title: strPtr("Foo")},
			body: "# Heading\n",
			want: "Foo",
		},
		{
			name: "heading when no title",
			body: "text\n# Hello World\n",
			want: "Hello World",
		},
		{
			name: "empty explicit title falls through to heading",
			meta: Metadata{Title: strPtr("")},
			body: "# Heading\n",
			want: "Heading",
		},
		{
			name:         "fallback when neither",
			body:         "no heading\n",
			want:         fallback,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			got := ResolveTitle(tt.meta, tt.body, func() string {
				called = true
				return fallback
			})
			if got != tt.want {
				t.Errorf("ResolveTitle() = %q, want %q", got, tt.want)
			}
			if called != tt.wantFallback {
				t.Errorf("fallback called = %v, want %v", called, tt.wantFallback)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDocumentTitle - Extraction and resolution together
// ---------------------------------------------------------------------------

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"title line wins over later heading", "Title: Foo\n\n# Bar\n", "Foo"},
		{"heading in body", "\n# Hello World\n", "Hello World"},
		{"heading consumed as metadata still titles", "# Hello World\n\ntext\n", "Hello World"},
		{"fallback", "\nplain\n", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := ExtractMetadata(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ExtractMetadata() error = %v", err)
			}
			got := ResolveTitle(doc.Metadata, doc.Body, func() string { return "fallback" })
			if got != tt.want {
				t.Errorf("title = %q, want %q", got, tt.want)
			}
		})
	}
}
