package pipeline

// Notes:
// - The ErrHTMLConversion branch is not tested: goldmark writing to a
//   bytes.Buffer does not fail on any input.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Markdown rendering
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         GoldmarkOptions
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading gets an id",
			input:        "# Shopping list\n",
			wantContains: []string{`<h1 id="shopping-list">Shopping list</h1>`},
		},
		{
			name:         "output is a fragment",
			input:        "text\n",
			wantExcludes: []string{"<html", "<body"},
		},
		{
			name:         "table from GFM",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "footnote",
			input:        "Claim[^1]\n\n[^1]: Source\n",
			wantContains: []string{"footnote"},
		},
		{
			name:         "definition list",
			input:        "Term\n: Definition\n",
			wantContains: []string{"<dl>", "<dt>Term</dt>", "<dd>Definition</dd>"},
		},
		{
			name:         "code block uses inline styles",
			input:        "```go\nfunc main() {}\n```\n",
			wantContains: []string{`style="`},
			wantExcludes: []string{`class="chroma"`},
		},
		{
			name:         "raw html is not passed through",
			input:        "<script>alert(1)</script>\n",
			wantExcludes: []string{"<script>"},
		},
		{
			name:         "straight quotes without typographer",
			input:        "\"quoted\" -- text\n",
			wantContains: []string{"&quot;quoted&quot; -- text"},
		},
		{
			name:         "typographer curls quotes and dashes",
			opts:         GoldmarkOptions{Typographer: true},
			input:        "\"quoted\" -- text\n",
			wantContains: []string{"&ldquo;quoted&rdquo;", "&ndash;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := NewGoldmarkConverter(tt.opts)
			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in %q", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() should not contain %q in %q", exclude, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter(GoldmarkOptions{}).ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want %v", err, context.Canceled)
	}
}
