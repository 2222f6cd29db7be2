package md2evernote

import (
	"time"

	"github.com/alnah/go-md2evernote/internal/dateutil"
)

// localeEnvVars are consulted in POSIX precedence order for the locale
// of month and day names.
var localeEnvVars = []string{"LC_ALL", "LC_TIME", "LANG"}

// FallbackTitle formats t as a localized timestamp for notes without a
// title. format accepts a preset name (iso, long, long-time...) or tokens
// such as "MMMM D, YYYY"; empty uses the long date and short time form.
// locale uses POSIX form ("fr_FR.UTF-8"); empty means English.
func FallbackTitle(t time.Time, format, locale string) (string, error) {
	return dateutil.FormatLocalized(t, format, locale)
}

// DetectLocale returns the first non-empty locale among LC_ALL, LC_TIME
// and LANG, normalized to the "fr_FR" form.
func DetectLocale(getenv func(string) string) string {
	for _, key := range localeEnvVars {
		if v := getenv(key); v != "" {
			return dateutil.NormalizeLocale(v)
		}
	}
	return dateutil.DefaultLocale
}
