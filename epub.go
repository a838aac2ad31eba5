package epubgen

import "fmt"

// Convert runs the full pipeline: split the Markdown into chapters, render
// each chapter to XHTML, register the cover and inline images, build the
// book metadata, and package everything into an EPUB archive.
//
// Structural and validation failures (empty document, rejected assets,
// oversize input) are returned as typed errors before any archive bytes
// exist. Rendering faults never fail the call; they surface on
// Result.Warnings.
//
// Convert is stateless and safe for concurrent use.
func Convert(req Request, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	content := stripBOM(req.Content)
	if int64(len(content)) > o.maxContentBytes {
		return nil, &AssetTooLargeError{Name: "content", Size: int64(len(content)), Limit: o.maxContentBytes}
	}

	raw, err := splitChapters(content)
	if err != nil {
		return nil, err
	}

	reg := newAssetRegistry(o.maxImageBytes)
	if req.Cover != nil {
		if err := reg.setCover(req.Cover); err != nil {
			return nil, err
		}
	}
	for _, img := range req.Images {
		if err := reg.addImage(img); err != nil {
			return nil, err
		}
	}

	title := sanitizeTitle(req.Title)

	var warnings []string
	book := &Book{
		Title:      title,
		Author:     sanitizeAuthor(req.Author),
		Language:   o.language,
		Identifier: newIdentifier(),
		Generated:  generationTime(),
		Cover:      reg.cover,
		Assets:     reg.assets,
	}
	book.Chapters = renderChapters(raw, title, reg.resolve, &warnings)

	data, err := Build(book)
	if err != nil {
		return nil, err
	}

	return &Result{
		EPUB:     data,
		Filename: suggestedFilename(title),
		Warnings: warnings,
	}, nil
}

// Preview runs only the splitter and renderer, returning the rendered
// chapter fragments for display without packaging. Image references are
// left unresolved and render as placeholders.
func Preview(content string, opts ...Option) (*PreviewResult, error) {
	o := buildOptions(opts)

	content = stripBOM(content)
	if int64(len(content)) > o.maxContentBytes {
		return nil, &AssetTooLargeError{Name: "content", Size: int64(len(content)), Limit: o.maxContentBytes}
	}

	raw, err := splitChapters(content)
	if err != nil {
		return nil, err
	}

	noImages := func(string) (string, bool) { return "", false }

	var warnings []string
	return &PreviewResult{
		Chapters: renderChapters(raw, fallbackTitle, noImages, &warnings),
		Warnings: warnings,
	}, nil
}

// renderChapters renders the raw chapters in order, assigning 1-based
// ordinals and substituting defaultTitle for chapters without a heading.
func renderChapters(raw []rawChapter, defaultTitle string, resolve imageResolver, warnings *[]string) []Chapter {
	chapters := make([]Chapter, 0, len(raw))
	for i, rc := range raw {
		ordinal := i + 1
		title := rc.title
		if title == "" {
			title = defaultTitle
		}
		warn := func(msg string) {
			*warnings = append(*warnings, fmt.Sprintf("chapter %d: %s", ordinal, msg))
		}
		chapters = append(chapters, Chapter{
			Title:   title,
			Ordinal: ordinal,
			Body:    renderChapter(rc.body, resolve, warn),
		})
	}
	return chapters
}
