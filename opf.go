package epubgen

import (
	"encoding/xml"
	"fmt"
)

// Archive paths of the package files. opfPath is the location
// META-INF/container.xml points at; all content hrefs are relative to its
// directory.
const (
	opfPath        = contentDir + "/content.opf"
	navPath        = contentDir + "/nav.xhtml"
	ncxPath        = contentDir + "/toc.ncx"
	stylesheetPath = contentDir + "/style/stylesheet.css"
)

// Media types used in the manifest.
const (
	mediaTypeXHTML = "application/xhtml+xml"
	mediaTypeNCX   = "application/x-dtbncx+xml"
	mediaTypeCSS   = "text/css"
)

// uniqueIDRef is the xml id of the dc:identifier element, referenced by the
// package element's unique-identifier attribute.
const uniqueIDRef = "pub-id"

// opfPackage models the root <package> element of the package document.
// Namespace prefixes are spelled out in the tags because encoding/xml has
// no prefix management on the marshal side.
type opfPackage struct {
	XMLName          xml.Name    `xml:"package"`
	Xmlns            string      `xml:"xmlns,attr"`
	Version          string      `xml:"version,attr"`
	UniqueIdentifier string      `xml:"unique-identifier,attr"`
	Metadata         opfMetadata `xml:"metadata"`
	Manifest         opfManifest `xml:"manifest"`
	Spine            opfSpine    `xml:"spine"`
}

// opfMetadata holds the Dublin Core elements and EPUB meta entries.
type opfMetadata struct {
	XmlnsDC    string        `xml:"xmlns:dc,attr"`
	Identifier opfIdentifier `xml:"dc:identifier"`
	Title      string        `xml:"dc:title"`
	Language   string        `xml:"dc:language"`
	Creator    string        `xml:"dc:creator"`
	Date       string        `xml:"dc:date"`
	Metas      []opfMeta     `xml:"meta"`
}

// opfIdentifier is the dc:identifier element carrying the unique id.
type opfIdentifier struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

// opfMeta covers both the EPUB 3 property form and the EPUB 2 name/content
// form (the latter kept for cover compatibility with older readers).
type opfMeta struct {
	Property string `xml:"property,attr,omitempty"`
	Name     string `xml:"name,attr,omitempty"`
	Content  string `xml:"content,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// opfManifest wraps the <manifest> element.
type opfManifest struct {
	Items []opfItem `xml:"item"`
}

// opfItem is a single manifest <item>.
type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr,omitempty"`
}

// opfSpine wraps the <spine> element.
type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

// opfItemRef is a single spine <itemref>.
type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// chapterHref returns the manifest href of the chapter with the given
// ordinal.
func chapterHref(ordinal int) string {
	return fmt.Sprintf("chapter_%d.xhtml", ordinal)
}

// chapterID returns the manifest id of the chapter with the given ordinal.
func chapterID(ordinal int) string {
	return fmt.Sprintf("chapter-%d", ordinal)
}

// planPackage derives the manifest and spine from a Book. The spine order
// equals chapter ordinal order; the manifest lists the navigation
// documents, the stylesheet, every chapter, and every asset.
func planPackage(book *Book) ([]manifestItem, []spineItem) {
	manifest := []manifestItem{
		{ID: "nav", Href: opfHref(navPath), MediaType: mediaTypeXHTML, Properties: "nav"},
		{ID: "ncx", Href: opfHref(ncxPath), MediaType: mediaTypeNCX},
		{ID: "css", Href: opfHref(stylesheetPath), MediaType: mediaTypeCSS},
	}

	spine := make([]spineItem, 0, len(book.Chapters))
	for _, ch := range book.Chapters {
		manifest = append(manifest, manifestItem{
			ID:        chapterID(ch.Ordinal),
			Href:      chapterHref(ch.Ordinal),
			MediaType: mediaTypeXHTML,
		})
		spine = append(spine, spineItem{IDRef: chapterID(ch.Ordinal)})
	}

	if book.Cover != nil {
		manifest = append(manifest, manifestItem{
			ID:         book.Cover.ID,
			Href:       opfHref(book.Cover.Path),
			MediaType:  book.Cover.MediaType,
			Properties: "cover-image",
		})
	}
	for _, a := range book.Assets {
		manifest = append(manifest, manifestItem{
			ID:        a.ID,
			Href:      opfHref(a.Path),
			MediaType: a.MediaType,
		})
	}

	return manifest, spine
}

// buildOPF serialises the EPUB 3 package document for the Book.
func buildOPF(book *Book, manifest []manifestItem, spine []spineItem) ([]byte, error) {
	pkg := opfPackage{
		Xmlns:            "http://www.idpf.org/2007/opf",
		Version:          "3.0",
		UniqueIdentifier: uniqueIDRef,
		Metadata: opfMetadata{
			XmlnsDC:    "http://purl.org/dc/elements/1.1/",
			Identifier: opfIdentifier{ID: uniqueIDRef, Value: book.Identifier},
			Title:      book.Title,
			Language:   book.Language,
			Creator:    book.Author,
			Date:       book.Generated.UTC().Format("2006-01-02"),
			Metas: []opfMeta{
				{Property: "dcterms:modified", Value: modifiedTimestamp(book.Generated)},
			},
		},
		Spine: opfSpine{Toc: "ncx"},
	}

	if book.Cover != nil {
		// EPUB 2 readers find the cover through this meta element.
		pkg.Metadata.Metas = append(pkg.Metadata.Metas, opfMeta{Name: "cover", Content: book.Cover.ID})
	}

	for _, mi := range manifest {
		pkg.Manifest.Items = append(pkg.Manifest.Items, opfItem{
			ID:         mi.ID,
			Href:       mi.Href,
			MediaType:  mi.MediaType,
			Properties: mi.Properties,
		})
	}
	for _, si := range spine {
		pkg.Spine.ItemRefs = append(pkg.Spine.ItemRefs, opfItemRef{IDRef: si.IDRef})
	}

	data, err := xml.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("epubgen: marshal package document: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}
