package assets

import (
	"fmt"
	"os"

	"github.com/alnah/go-md2evernote/internal/fileutil"
)

var defaultLoader = NewEmbeddedLoader()

// ResolveStyle returns CSS for a style name or file path.
// Values containing a path separator are read from disk; anything else is
// looked up among the embedded styles. An empty value selects
// DefaultStyleName.
func ResolveStyle(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultStyleName
	}

	if fileutil.IsFilePath(nameOrPath) {
		content, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided path
		if err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: %s", ErrStyleNotFound, nameOrPath)
			}
			return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		return string(content), nil
	}

	return defaultLoader.LoadStyle(nameOrPath)
}

// AvailableStyles lists the embedded style names, for hints and completion.
func AvailableStyles() []string {
	return defaultLoader.ListStyles()
}
