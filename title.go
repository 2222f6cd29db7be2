package md2evernote

import (
	"regexp"
	"strings"
)

// headingPattern matches an ATX level-one heading line. Setext headings
// are not recognized.
var headingPattern = regexp.MustCompile(`^#([^#]+)#?.*$`)

// HeadingTitle returns the text of the first level-one heading in body
// whose trimmed text is not empty. The heading stays in the body.
func HeadingTitle(body string) (string, bool) {
	for line := range strings.Lines(body) {
		m := headingPattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil {
			continue
		}
		if title := strings.TrimSpace(m[1]); title != "" {
			return title, true
		}
	}
	return "", false
}

// ResolveTitle picks the note title: the declared title when not empty,
// else the first heading of body, else fallback(). fallback is only
// called when needed.
func ResolveTitle(meta Metadata, body string, fallback func() string) string {
	if title := meta.TitleValue(); title != "" {
		return title
	}
	if title, ok := HeadingTitle(body); ok {
		return title
	}
	return fallback()
}
