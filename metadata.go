package md2evernote

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Metadata line patterns, matched against a line without its terminator.
var (
	titlePattern    = regexp.MustCompile(`^(?:Title:|#)\s(.*)$`)
	tagsPattern     = regexp.MustCompile(`^(?:Keywords:|@)\s(.*)$`)
	notebookPattern = regexp.MustCompile(`^(?:Notebook:|=)\s(.*)$`)
	blankPattern    = regexp.MustCompile(`^\s?$`)
)

// Metadata holds note attributes declared at the top of a document.
// Nil pointers and HasTags == false mean the attribute was never declared.
type Metadata struct {
	Title    *string
	Tags     []string
	HasTags  bool
	Notebook *string
}

// Document is a parsed input: its metadata and the Markdown body that
// goes through the pipeline.
type Document struct {
	Metadata Metadata
	Body     string
}

// TitleValue returns the declared title, or "" when unset.
func (m Metadata) TitleValue() string {
	if m.Title == nil {
		return ""
	}
	return *m.Title
}

// NotebookValue returns the declared notebook, or "" when unset.
func (m Metadata) NotebookValue() string {
	if m.Notebook == nil {
		return ""
	}
	return *m.Notebook
}

// ExtractMetadata reads a document and separates leading metadata lines
// from the body.
//
// Lines are examined until the first blank line or end of input. Title,
// tag and notebook lines are consumed; any other line is kept in the body.
// The blank line and everything after it are copied to the body verbatim,
// so metadata-looking lines after it stay untouched.
func ExtractMetadata(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, ErrNilInput
	}

	doc := &Document{}
	var body strings.Builder
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		if line == "" {
			break
		}

		switch applyMetadataLine(&doc.Metadata, line) {
		case lineBlank:
			body.WriteString(line)
			if _, copyErr := io.Copy(&body, br); copyErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrReadInput, copyErr)
			}
			doc.Body = body.String()
			return doc, nil
		case lineBody:
			body.WriteString(line)
		}

		if err != nil {
			break
		}
	}

	doc.Body = body.String()
	return doc, nil
}

type lineKind int

const (
	lineMetadata lineKind = iota
	lineBlank
	lineBody
)

// applyMetadataLine updates meta when line declares an attribute and
// reports how the line was classified.
func applyMetadataLine(meta *Metadata, line string) lineKind {
	text := strings.TrimSuffix(line, "\n")

	if m := titlePattern.FindStringSubmatch(text); m != nil {
		title := strings.TrimSpace(m[1])
		meta.Title = &title
		return lineMetadata
	}
	if m := tagsPattern.FindStringSubmatch(text); m != nil {
		meta.Tags = splitTags(m[1])
		meta.HasTags = true
		return lineMetadata
	}
	if m := notebookPattern.FindStringSubmatch(text); m != nil {
		notebook := strings.TrimSpace(m[1])
		meta.Notebook = &notebook
		return lineMetadata
	}
	if blankPattern.MatchString(text) {
		return lineBlank
	}
	return lineBody
}

// splitTags splits a comma-separated tag list, trimming each tag and
// dropping empty ones: "a, , b" yields [a b], not [a "" b].
func splitTags(list string) []string {
	parts := strings.Split(list, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
