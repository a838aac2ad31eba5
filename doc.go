// Package epubgen converts a Markdown document plus book metadata into a
// valid EPUB (OCF) package.
//
// The pipeline splits the Markdown into chapters at top-level headings,
// renders each chapter to a well-formed XHTML fragment, validates and
// registers the cover and inline images, and serialises everything into a
// ZIP container with the exact layout EPUB readers require: the "mimetype"
// entry first and uncompressed, META-INF/container.xml pointing at the
// package document, and an internally consistent manifest, spine, and
// navigation.
//
// # Converting a document
//
// Use [Convert] with a fully materialised [Request]:
//
//	res, err := epubgen.Convert(epubgen.Request{
//	    Title:   "My Book",
//	    Author:  "Jane Doe",
//	    Content: "# Chapter One\nHello\n# Chapter Two\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(res.Filename, res.EPUB, 0644)
//
// # Previewing
//
// [Preview] runs only the splitter and renderer, returning the chapter
// fragments without packaging. It is intended for browser-side previews.
//
// # Determinism
//
// [Build] packages an already-populated [Book]. Given the same Book value
// (including its Identifier and Generated timestamp) it produces a
// byte-identical archive; [Convert] generates the identifier and timestamp
// exactly once per call and threads them through as plain data.
//
// # Error Handling
//
// Structural and validation failures are reported as typed errors before
// any archive bytes exist:
//   - [ErrEmptyDocument] – the trimmed Markdown input is empty
//   - [UnsupportedAssetTypeError] – an image media type outside the allow-list
//   - [AssetTooLargeError] – a payload exceeds its configured ceiling
//   - [PackagingError] – internal manifest/spine inconsistency (fail closed)
//
// Per-chapter rendering faults never fail the pipeline; they degrade the
// affected content to escaped literal text and surface on
// [Result.Warnings].
//
// The engine performs no I/O and keeps no state across calls; independent
// conversions may run concurrently.
package epubgen
