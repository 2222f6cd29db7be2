// Package dateutil provides date format parsing and localized formatting.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultLocale is used when no locale is configured or detectable.
const DefaultLocale = "en_US"

// DefaultDateTimeFormat mirrors a long date followed by a short time,
// e.g. "October 19, 2026 at 3:04 PM".
const DefaultDateTimeFormat = "MMMM D, YYYY [at] h:mm A"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching. Matching is
// case-sensitive: MM is the month, mm the minute.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
	{"h", "3"},
	{"A", "PM"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":       "YYYY-MM-DD",
	"european":  "DD/MM/YYYY",
	"us":        "MM/DD/YYYY",
	"long":      "MMMM D, YYYY",
	"iso-time":  "YYYY-MM-DD HH:mm",
	"long-time": DefaultDateTimeFormat,
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd, HH, hh, h, mm, ss, A
// Use brackets to escape literal text: [at] preserves "at" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		// Handle bracket-escaped literal text
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// ResolveFormat expands a preset name (case-insensitive) or returns the
// format unchanged. An empty format resolves to DefaultDateTimeFormat.
func ResolveFormat(format string) string {
	if format == "" {
		return DefaultDateTimeFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		return preset
	}
	return format
}

// NormalizeLocale turns a POSIX locale such as "fr_FR.UTF-8" or
// "de_DE@euro" into the "fr_FR" form used for month and day names.
// Empty, "C" and "POSIX" map to DefaultLocale.
func NormalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i != -1 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "-", "_")
	switch locale {
	case "", "C", "POSIX":
		return DefaultLocale
	}
	return locale
}

// FormatLocalized formats t using a user-friendly format or preset and
// translates month and day names into locale. Unknown locales fall back
// to English names.
func FormatLocalized(t time.Time, format, locale string) (string, error) {
	goFmt, err := ParseDateFormat(ResolveFormat(format))
	if err != nil {
		return "", err
	}
	return monday.Format(t, goFmt, monday.Locale(NormalizeLocale(locale))), nil
}
