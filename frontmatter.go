package md2evernote

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// frontmatterFormats lists the accepted frontmatter delimiters:
// YAML between "---" lines and TOML between "+++" lines.
var frontmatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", func(data []byte, v any) error {
		return yaml.Unmarshal(data, v)
	}),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// frontmatterFields are the frontmatter keys mapped to note metadata.
// Tags accept a list or a comma-separated string.
type frontmatterFields struct {
	Title    string `yaml:"title" toml:"title"`
	Tags     any    `yaml:"tags" toml:"tags"`
	Keywords any    `yaml:"keywords" toml:"keywords"`
	Notebook string `yaml:"notebook" toml:"notebook"`
}

// ExtractMetadataWithFrontmatter reads an optional frontmatter block, then
// extracts line metadata from the rest of the document. Frontmatter values
// seed the metadata; line metadata declared after it overrides them.
// Frontmatter must open on the very first line; any other document,
// including one starting with a blank line, behaves exactly as with
// ExtractMetadata.
func ExtractMetadataWithFrontmatter(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, ErrNilInput
	}

	br := bufio.NewReader(r)
	if !startsWithFrontmatter(br) {
		return ExtractMetadata(br)
	}

	var fields frontmatterFields
	rest, err := frontmatter.Parse(br, &fields, frontmatterFormats...)
	if err != nil {
		return nil, fmt.Errorf("%w: frontmatter: %v", ErrReadInput, err)
	}

	doc, err := ExtractMetadata(bytes.NewReader(rest))
	if err != nil {
		return nil, err
	}

	seed := fields.metadata()
	if doc.Metadata.Title == nil {
		doc.Metadata.Title = seed.Title
	}
	if !doc.Metadata.HasTags {
		doc.Metadata.Tags = seed.Tags
		doc.Metadata.HasTags = seed.HasTags
	}
	if doc.Metadata.Notebook == nil {
		doc.Metadata.Notebook = seed.Notebook
	}
	return doc, nil
}

// startsWithFrontmatter reports whether the first line of br is exactly
// a frontmatter delimiter. Nothing is consumed.
func startsWithFrontmatter(br *bufio.Reader) bool {
	head, _ := br.Peek(len("---\r\n"))
	line, _, _ := bytes.Cut(head, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	for _, f := range frontmatterFormats {
		if string(line) == f.Start {
			return true
		}
	}
	return false
}

func (f frontmatterFields) metadata() Metadata {
	var meta Metadata
	if title := strings.TrimSpace(f.Title); title != "" {
		meta.Title = &title
	}
	if notebook := strings.TrimSpace(f.Notebook); notebook != "" {
		meta.Notebook = &notebook
	}

	raw := f.Tags
	if raw == nil {
		raw = f.Keywords
	}
	switch v := raw.(type) {
	case string:
		meta.Tags = splitTags(v)
		meta.HasTags = true
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if tag := strings.TrimSpace(fmt.Sprint(item)); tag != "" {
				tags = append(tags, tag)
			}
		}
		meta.Tags = tags
		meta.HasTags = true
	}
	return meta
}
