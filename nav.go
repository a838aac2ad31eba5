package epubgen

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// --- NCX (legacy table of contents) ---

// ncxDocument models the root <ncx> element.
type ncxDocument struct {
	XMLName  xml.Name  `xml:"ncx"`
	Xmlns    string    `xml:"xmlns,attr"`
	Version  string    `xml:"version,attr"`
	Head     ncxHead   `xml:"head"`
	DocTitle ncxText   `xml:"docTitle"`
	NavMap   ncxNavMap `xml:"navMap"`
}

// ncxHead wraps the <head> element with its meta entries.
type ncxHead struct {
	Metas []ncxMeta `xml:"meta"`
}

// ncxMeta is a single <meta> in the NCX head.
type ncxMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

// ncxText wraps an element whose only child is <text>.
type ncxText struct {
	Text string `xml:"text"`
}

// ncxNavMap wraps the <navMap> element.
type ncxNavMap struct {
	NavPoints []ncxNavPoint `xml:"navPoint"`
}

// ncxNavPoint is one flat navigation entry; chapters have no nesting.
type ncxNavPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder string     `xml:"playOrder,attr"`
	Label     ncxText    `xml:"navLabel"`
	Content   ncxContent `xml:"content"`
}

// ncxContent is the <content> element with its src attribute.
type ncxContent struct {
	Src string `xml:"src,attr"`
}

// buildNCX serialises the legacy NCX document. Entries mirror chapter
// titles and ordinals in spine order.
func buildNCX(book *Book) ([]byte, error) {
	doc := ncxDocument{
		Xmlns:   "http://www.daisy.org/z3986/2005/ncx/",
		Version: "2005-1",
		Head: ncxHead{Metas: []ncxMeta{
			{Name: "dtb:uid", Content: book.Identifier},
			{Name: "dtb:depth", Content: "1"},
			{Name: "dtb:totalPageCount", Content: "0"},
			{Name: "dtb:maxPageNumber", Content: "0"},
		}},
		DocTitle: ncxText{Text: book.Title},
	}

	for _, ch := range book.Chapters {
		doc.NavMap.NavPoints = append(doc.NavMap.NavPoints, ncxNavPoint{
			ID:        "navpoint-" + strconv.Itoa(ch.Ordinal),
			PlayOrder: strconv.Itoa(ch.Ordinal),
			Label:     ncxText{Text: ch.Title},
			Content:   ncxContent{Src: chapterHref(ch.Ordinal)},
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("epubgen: marshal NCX: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// --- EPUB 3 navigation document ---

// buildNav serialises the EPUB 3 nav document (epub:type="toc") with one
// list entry per chapter, in the same order as the spine.
func buildNav(book *Book) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
  <title>`)
	b.WriteString(xmlEscape(book.Title))
	b.WriteString(`</title>
  <link rel="stylesheet" type="text/css" href="style/stylesheet.css"/>
</head>
<body>
  <nav epub:type="toc" id="toc">
    <h1>Table of Contents</h1>
    <ol>
`)
	for _, ch := range book.Chapters {
		b.WriteString(`      <li><a href="`)
		b.WriteString(chapterHref(ch.Ordinal))
		b.WriteString(`">`)
		b.WriteString(xmlEscape(ch.Title))
		b.WriteString("</a></li>\n")
	}
	b.WriteString(`    </ol>
  </nav>
</body>
</html>
`)
	return []byte(b.String())
}

// buildChapterXHTML wraps a rendered chapter fragment in a complete XHTML
// document referencing the shared stylesheet.
func buildChapterXHTML(book *Book, ch Chapter) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="`)
	b.WriteString(xmlEscape(book.Language))
	b.WriteString(`">
<head>
  <title>`)
	b.WriteString(xmlEscape(ch.Title))
	b.WriteString(`</title>
  <link rel="stylesheet" type="text/css" href="style/stylesheet.css"/>
</head>
<body>
<h1>`)
	b.WriteString(xmlEscape(ch.Title))
	b.WriteString("</h1>\n")
	b.WriteString(ch.Body)
	b.WriteString(`
</body>
</html>
`)
	return []byte(b.String())
}
