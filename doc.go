// Package md2evernote converts Markdown documents into Evernote notes.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv, err := md2evernote.NewConverter(
//	    md2evernote.WithPipeline(md2evernote.PipelineOptions{
//	        Renderer: md2evernote.RendererOptions{Path: md2evernote.Builtin},
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2evernote.Input{Reader: os.Stdin})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.NoteID)
//
// # Metadata
//
// Lines at the top of the document, up to the first blank line, may set
// note metadata. Both MultiMarkdown keys and short prefixes are accepted:
//
//	Title: Weekly review     or   # Weekly review
//	Keywords: work, review   or   @ work, review
//	Notebook: Journal        or   = Journal
//
// Any other line before the blank line is kept in the body. When a key
// repeats, the last occurrence wins. Without a title, the first level-one
// heading of the body is used, then a localized timestamp.
//
// # Conversion Pipeline
//
// The body flows through up to three stages, always in this order:
//
//  1. Markdown to HTML renderer (external program, or goldmark with "builtin")
//  2. Optional smart typography processor (external program)
//  3. Optional CSS inliner (external program, or headless Chrome with "builtin")
//
// Stages run concurrently, connected by pipes, with no shell in between.
// A failing stage does not abort conversion unless strict mode is on: the
// partial output is published and the failure is logged.
//
// # Publishing
//
// Notes are created through the NotePublisher interface. AppleScriptPublisher
// drives Evernote through osascript on macOS; WriterPublisher prints the
// note for dry runs.
package md2evernote
