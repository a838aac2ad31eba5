package epubgen

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Fallbacks for blank user-supplied metadata.
const (
	fallbackTitle  = "Untitled Book"
	fallbackAuthor = "Unknown"
)

// sanitizeTitle normalises a user-supplied title: whitespace collapsed and
// trimmed, falling back to "Untitled Book" when blank.
func sanitizeTitle(s string) string {
	s = strings.TrimSpace(collapseWhitespace(s))
	if s == "" {
		return fallbackTitle
	}
	return s
}

// sanitizeAuthor normalises a user-supplied author, falling back to
// "Unknown" when blank.
func sanitizeAuthor(s string) string {
	s = strings.TrimSpace(collapseWhitespace(s))
	if s == "" {
		return fallbackAuthor
	}
	return s
}

// newIdentifier generates the unique publication identifier. Convert calls
// this exactly once per conversion; packaging never regenerates it.
func newIdentifier() string {
	return "urn:uuid:" + uuid.NewString()
}

// generationTime returns the single timestamp for a conversion, truncated
// to whole seconds since both dcterms:modified and ZIP entry times carry
// second precision at best.
func generationTime() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// modifiedTimestamp formats t for the dcterms:modified meta element.
func modifiedTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// suggestedFilename derives a download-safe filename from the book title:
// ASCII letters, digits, dots and dashes pass through, whitespace becomes
// underscores, everything else is dropped.
func suggestedFilename(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastUnderscore := false
	for _, r := range title {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-'):
			b.WriteRune(r)
			lastUnderscore = false
		case unicode.IsSpace(r) || r == '_':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	name := strings.Trim(b.String(), "._-")
	if name == "" {
		name = "book"
	}
	return name + ".epub"
}
