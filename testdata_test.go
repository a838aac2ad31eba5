package epubgen

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"testing"
	"time"
)

// fixedTime is the generation timestamp used by tests that need
// deterministic archives.
var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testBook returns a minimal valid Book for packaging tests.
func testBook() *Book {
	return &Book{
		Title:      "Test Book",
		Author:     "Jane Doe",
		Language:   "en",
		Identifier: "urn:uuid:00000000-0000-0000-0000-000000000000",
		Generated:  fixedTime,
		Chapters: []Chapter{
			{Title: "Chapter One", Ordinal: 1, Body: "<p>Hello</p>"},
			{Title: "Chapter Two", Ordinal: 2, Body: "<p>World</p>"},
		},
	}
}

// readArchive opens a produced EPUB archive for inspection.
// It calls t.Fatal on any error.
func readArchive(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("readArchive: open zip: %v", err)
	}
	return zr
}

// entryData reads the full contents of the named archive entry.
func entryData(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("entryData: open %s: %v", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("entryData: read %s: %v", name, err)
			}
			return string(data)
		}
	}
	t.Fatalf("entryData: entry %s not in archive", name)
	return ""
}

// hasEntry reports whether the archive contains the named entry.
func hasEntry(zr *zip.Reader, name string) bool {
	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// --- package document decoding for assertions ---

// parsedOPF mirrors the package document structure on the read side, the
// way an EPUB reader would decode it.
type parsedOPF struct {
	XMLName          xml.Name       `xml:"package"`
	Version          string         `xml:"version,attr"`
	UniqueIdentifier string         `xml:"unique-identifier,attr"`
	Metadata         parsedMetadata `xml:"metadata"`
	Manifest         parsedManifest `xml:"manifest"`
	Spine            parsedSpine    `xml:"spine"`
}

type parsedMetadata struct {
	Titles      []string       `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creators    []string       `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Languages   []string       `xml:"http://purl.org/dc/elements/1.1/ language"`
	Identifiers []parsedIdent  `xml:"http://purl.org/dc/elements/1.1/ identifier"`
	Dates       []string       `xml:"http://purl.org/dc/elements/1.1/ date"`
	Metas       []parsedMeta  `xml:"meta"`
}

type parsedIdent struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type parsedMeta struct {
	Property string `xml:"property,attr"`
	Name     string `xml:"name,attr"`
	Content  string `xml:"content,attr"`
	Value    string `xml:",chardata"`
}

type parsedManifest struct {
	Items []parsedItem `xml:"item"`
}

type parsedItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type parsedSpine struct {
	Toc      string          `xml:"toc,attr"`
	ItemRefs []parsedItemRef `xml:"itemref"`
}

type parsedItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// decodeOPF unmarshals a package document.
func decodeOPF(t *testing.T, data string) parsedOPF {
	t.Helper()
	var pkg parsedOPF
	if err := xml.Unmarshal([]byte(data), &pkg); err != nil {
		t.Fatalf("decodeOPF: %v", err)
	}
	return pkg
}

// requireWellFormedXML scans data with a strict XML decoder and fails the
// test on the first syntax error.
func requireWellFormedXML(t *testing.T, name, data string) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader([]byte(data)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("%s is not well-formed XML: %v", name, err)
		}
	}
}
