package epubgen

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// markdown is the shared goldmark instance. XHTML output mode keeps void
// elements self-closed; raw HTML in the source is omitted by goldmark's
// default policy rather than passed through, so the output stays
// well-formed XML. Tables and strikethrough match the extensions the
// conversion historically supported.
//
// A goldmark.Markdown is safe for concurrent use.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(ghtml.WithXHTML()),
)

// imageResolver maps a local image reference name from the Markdown source
// to its archive-relative href. ok is false for unknown references.
type imageResolver func(name string) (href string, ok bool)

// renderChapter converts one chapter body into a sanitised XHTML fragment.
// A rendering fault degrades the chapter to escaped literal text inside a
// <pre> element and records a warning; it never propagates an error.
func renderChapter(body string, resolve imageResolver, warn func(string)) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		warn(fmt.Sprintf("markdown rendering failed, chapter kept as literal text: %v", err))
		return "<pre>" + xmlEscape(body) + "</pre>"
	}

	frag, err := sanitizeFragment(buf.Bytes(), resolve, warn)
	if err != nil {
		warn(fmt.Sprintf("sanitising rendered chapter failed, chapter kept as literal text: %v", err))
		return "<pre>" + xmlEscape(body) + "</pre>"
	}
	return frag
}
