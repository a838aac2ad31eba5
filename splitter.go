package epubgen

import "strings"

// rawChapter is one chapter before rendering: the heading-derived title and
// the verbatim body lines.
type rawChapter struct {
	// title is the cleaned heading text; empty for the fallback chapter.
	title string

	// body is the chapter content with internal structure preserved.
	body string
}

// splitChapters partitions Markdown content into chapters at top-level
// heading boundaries. A line with exactly one leading '#' followed by text
// opens a new chapter; all other lines, including deeper headings, are
// appended verbatim to the current chapter body. Lines inside fenced code
// blocks never open a chapter.
//
// Content preceding the first top-level heading becomes a leading chapter
// with an empty title, as does a document with no top-level heading at all;
// the caller substitutes the book title. Returns ErrEmptyDocument only when
// the trimmed input is empty.
func splitChapters(content string) ([]rawChapter, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyDocument
	}

	var (
		chapters []rawChapter
		current  []string
		title    string
		started  bool
		inFence  bool
		fenceSeq string
	)

	flush := func() {
		body := strings.Join(current, "\n")
		if !started && strings.TrimSpace(body) == "" {
			// Whitespace-only preamble before the first heading.
			current = nil
			return
		}
		chapters = append(chapters, rawChapter{title: title, body: body})
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		if seq, rest := fenceSequence(line); seq != "" {
			if !inFence {
				inFence = true
				fenceSeq = seq
			} else if seq[0] == fenceSeq[0] && len(seq) >= len(fenceSeq) && strings.TrimSpace(rest) == "" {
				// A closing fence carries no info string; "```go" inside
				// an open block is content, not a close.
				inFence = false
			}
			current = append(current, line)
			continue
		}

		if !inFence {
			if text, ok := topLevelHeading(line); ok {
				flush()
				title = text
				started = true
				continue
			}
		}
		current = append(current, line)
	}
	// The final flush always emits: either a heading was seen (started) or
	// the body is the non-blank remainder of a headingless document.
	started = true
	flush()
	return chapters, nil
}

// topLevelHeading reports whether line is a level-1 ATX heading and returns
// its cleaned title text. Exactly one '#' is required; deeper levels stay in
// the chapter body.
func topLevelHeading(line string) (string, bool) {
	s := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(s, "#") || strings.HasPrefix(s, "##") {
		return "", false
	}
	text := strings.TrimSpace(s[1:])
	// Drop an optional ATX closing sequence ("# Title #").
	text = strings.TrimRight(text, "#")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return cleanHeadingText(text), true
}

// cleanHeadingText strips Markdown emphasis markers from heading text and
// collapses internal whitespace runs.
func cleanHeadingText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '*', '_', '`', '~':
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(collapseWhitespace(b.String()))
}

// fenceSequence returns the leading code-fence sequence ("```" or "~~~",
// possibly longer) of line and the remainder after it, or empty strings
// when the line carries no fence. Up to three leading spaces are allowed,
// as in CommonMark. The remainder lets the caller distinguish opening
// fences, which may carry an info string, from closing ones, which must not.
func fenceSequence(line string) (seq, rest string) {
	s := line
	for i := 0; i < 3 && strings.HasPrefix(s, " "); i++ {
		s = s[1:]
	}
	if len(s) < 3 {
		return "", ""
	}
	c := s[0]
	if c != '`' && c != '~' {
		return "", ""
	}
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	if n < 3 {
		return "", ""
	}
	return s[:n], s[n:]
}
