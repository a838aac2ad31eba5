package epubgen

import "time"

// Request is the fully materialised input to a conversion. All payloads
// must be in memory before Convert is called; the engine performs no I/O.
type Request struct {
	// Title is the book title. Blank falls back to "Untitled Book".
	Title string

	// Author is the book author. Blank falls back to "Unknown".
	Author string

	// Content is the raw Markdown source.
	Content string

	// Cover is the optional cover image.
	Cover *CoverInput

	// Images holds the payloads for inline image references in Content.
	// A Markdown reference like ![x](diagram.png) is resolved against
	// ImageInput.Name; references without a matching entry render as a
	// visible placeholder.
	Images []ImageInput
}

// CoverInput carries the cover image bytes and declared media type.
type CoverInput struct {
	// Data is the raw image payload.
	Data []byte

	// MediaType is the declared MIME type (e.g., "image/jpeg").
	MediaType string
}

// ImageInput carries one inline image payload.
type ImageInput struct {
	// Name is the reference name used in the Markdown source
	// (e.g., "diagram.png").
	Name string

	// Data is the raw image payload.
	Data []byte

	// MediaType is the declared MIME type.
	MediaType string
}

// Result is the output of a successful conversion.
type Result struct {
	// EPUB is the finished archive.
	EPUB []byte

	// Filename is a download-safe suggested filename derived from the title.
	Filename string

	// Warnings lists non-fatal rendering faults contained during the
	// conversion (degraded constructs, unresolved image references).
	Warnings []string
}

// PreviewResult holds the rendered chapter fragments produced by the
// splitter and renderer without packaging.
type PreviewResult struct {
	// Chapters are the rendered chapters in document order.
	Chapters []Chapter

	// Warnings lists non-fatal rendering faults, as on Result.
	Warnings []string
}

// Book is the normalised, validated intermediate form handed to Build.
// Convert constructs one Book per call; a Book is plain data and carries
// everything packaging needs, so Build is deterministic.
type Book struct {
	// Title is the sanitised book title, never empty.
	Title string

	// Author is the sanitised author, never empty.
	Author string

	// Language is the BCP 47 language tag (e.g., "en").
	Language string

	// Identifier is the unique publication identifier (e.g., "urn:uuid:...").
	Identifier string

	// Generated is the single generation timestamp for the conversion.
	// It stamps dcterms:modified and every archive entry.
	Generated time.Time

	// Cover is the registered cover asset, nil when no cover was supplied.
	Cover *Asset

	// Chapters are the rendered chapters in ordinal order.
	Chapters []Chapter

	// Assets are the registered inline image assets in first-seen order.
	Assets []Asset
}

// Chapter is one rendered chapter of the book.
type Chapter struct {
	// Title is the chapter title, derived from the heading text or falling
	// back to the book title. Never empty in a Book handed to Build.
	Title string

	// Ordinal is the 1-based position in reading order.
	Ordinal int

	// Body is the rendered XHTML fragment (body content only).
	Body string
}

// Asset is a binary payload registered in the package manifest.
type Asset struct {
	// ID is the manifest id ("cover-image", "img-1", "img-2", ...).
	ID string

	// MediaType is the MIME type.
	MediaType string

	// Path is the archive-internal path (e.g., "OEBPS/images/img-1.png").
	Path string

	// Data is the payload.
	Data []byte
}

// manifestItem is an entry accumulated for the OPF <manifest> while the
// archive is written.
type manifestItem struct {
	// ID is the unique manifest id.
	ID string

	// Href is the file path relative to the OPF directory.
	Href string

	// MediaType is the MIME type of the resource.
	MediaType string

	// Properties holds space-separated EPUB 3 properties
	// (e.g., "nav", "cover-image").
	Properties string
}

// spineItem is an entry accumulated for the OPF <spine>.
type spineItem struct {
	// IDRef is the manifest id this spine entry references.
	IDRef string
}
