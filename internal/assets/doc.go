// Package assets provides the CSS stylesheets the built-in inliner applies
// to rendered notes before folding them into style attributes.
//
// Styles are resolved by name from the embedded styles/ directory, or read
// from disk when the value looks like a path:
//
//	css, err := assets.ResolveStyle("default")
//	css, err := assets.ResolveStyle("./note.css")
//
// Style names are validated to prevent path traversal; only paths given
// explicitly by the user are read from the filesystem.
package assets
