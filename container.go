package epubgen

import (
	"encoding/xml"
	"fmt"
)

// containerPath is the well-known location of container.xml in the archive.
const containerPath = "META-INF/container.xml"

// containerXML models the META-INF/container.xml file that points readers
// at the package document.
type containerXML struct {
	XMLName   xml.Name   `xml:"container"`
	Version   string     `xml:"version,attr"`
	Xmlns     string     `xml:"xmlns,attr"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

// rootFile is a single <rootfile> element inside container.xml.
type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// buildContainerXML serialises container.xml referencing the package
// document at opfPath.
func buildContainerXML() ([]byte, error) {
	c := containerXML{
		Version: "1.0",
		Xmlns:   "urn:oasis:names:tc:opendocument:xmlns:container",
		RootFiles: []rootFile{
			{FullPath: opfPath, MediaType: "application/oebps-package+xml"},
		},
	}
	data, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("epubgen: marshal container.xml: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// Build serialises a Book into a finished OCF archive. It is deterministic:
// the same Book value (including Identifier and Generated) produces a
// byte-identical archive. All non-deterministic values are Book fields
// supplied by the caller; nothing is generated here.
//
// Build fails closed: when the consistency check finds a manifest, spine,
// or payload mismatch, no archive bytes are returned.
func Build(book *Book) ([]byte, error) {
	if err := validateBook(book); err != nil {
		return nil, err
	}

	manifest, spine := planPackage(book)

	opfData, err := buildOPF(book, manifest, spine)
	if err != nil {
		return nil, err
	}
	ncxData, err := buildNCX(book)
	if err != nil {
		return nil, err
	}
	containerData, err := buildContainerXML()
	if err != nil {
		return nil, err
	}

	w := newArchiveWriter(book.Generated)
	if err := w.writeMimetype(); err != nil {
		return nil, err
	}
	if err := w.add(containerPath, containerData); err != nil {
		return nil, err
	}
	if err := w.add(opfPath, opfData); err != nil {
		return nil, err
	}
	if err := w.add(navPath, buildNav(book)); err != nil {
		return nil, err
	}
	if err := w.add(ncxPath, ncxData); err != nil {
		return nil, err
	}
	if err := w.add(stylesheetPath, []byte(defaultStylesheet)); err != nil {
		return nil, err
	}
	for _, ch := range book.Chapters {
		if err := w.add(contentDir+"/"+chapterHref(ch.Ordinal), buildChapterXHTML(book, ch)); err != nil {
			return nil, err
		}
	}
	if book.Cover != nil {
		if err := w.add(book.Cover.Path, book.Cover.Data); err != nil {
			return nil, err
		}
	}
	for _, a := range book.Assets {
		if err := w.add(a.Path, a.Data); err != nil {
			return nil, err
		}
	}

	if err := verifyPackage(manifest, spine, w); err != nil {
		return nil, err
	}

	return w.close()
}

// validateBook checks the structural invariants a Book must satisfy before
// packaging: at least one chapter, strictly increasing ordinals, and
// non-empty titles.
func validateBook(book *Book) error {
	if book == nil || len(book.Chapters) == 0 {
		return ErrNoChapters
	}
	prev := 0
	for _, ch := range book.Chapters {
		if ch.Ordinal <= prev {
			return &PackagingError{Reason: fmt.Sprintf("chapter ordinal %d not strictly increasing", ch.Ordinal)}
		}
		if ch.Title == "" {
			return &PackagingError{Reason: fmt.Sprintf("chapter %d has an empty title", ch.Ordinal)}
		}
		prev = ch.Ordinal
	}
	if book.Identifier == "" {
		return &PackagingError{Reason: "book has no identifier"}
	}
	if book.Generated.IsZero() {
		return &PackagingError{Reason: "book has no generation timestamp"}
	}
	return nil
}

// verifyPackage is the pre-emission consistency check: every manifest id is
// unique, every spine reference resolves to a manifest entry, and every
// declared href has a payload written to the archive.
func verifyPackage(manifest []manifestItem, spine []spineItem, w *archiveWriter) error {
	byID := make(map[string]bool, len(manifest))
	for _, mi := range manifest {
		if byID[mi.ID] {
			return &PackagingError{Reason: fmt.Sprintf("duplicate manifest id %q", mi.ID)}
		}
		byID[mi.ID] = true
		if !w.has(contentDir + "/" + mi.Href) {
			return &PackagingError{Reason: fmt.Sprintf("manifest href %q has no archive payload", mi.Href)}
		}
	}
	for _, si := range spine {
		if !byID[si.IDRef] {
			return &PackagingError{Reason: fmt.Sprintf("spine idref %q not in manifest", si.IDRef)}
		}
	}
	return nil
}
