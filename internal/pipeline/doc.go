// Package pipeline holds the in-process building blocks of note rendering:
//   - Markdown to HTML conversion via Goldmark (the "builtin" renderer)
//   - CSS injection ahead of the built-in inliner
//   - Relative image path rewriting for notes read from files
//
// Subprocess orchestration lives in the root md2evernote package; this
// package only transforms strings.
package pipeline
