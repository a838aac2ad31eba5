package epubgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"
)

// mimetypeContent is the required content of the "mimetype" entry.
const mimetypeContent = "application/epub+zip"

// archiveWriter wraps zip.Writer with the OCF wire-format rules: the
// mimetype entry first and stored uncompressed, every other entry deflated,
// and one fixed modification time on all headers so that identical input
// produces a byte-identical archive.
type archiveWriter struct {
	buf      *bytes.Buffer
	zw       *zip.Writer
	modified time.Time
	written  map[string]bool
}

// newArchiveWriter creates a writer whose entries are all stamped with the
// given modification time.
func newArchiveWriter(modified time.Time) *archiveWriter {
	buf := new(bytes.Buffer)
	return &archiveWriter{
		buf:      buf,
		zw:       zip.NewWriter(buf),
		modified: modified,
		written:  make(map[string]bool),
	}
}

// writeMimetype writes the mimetype entry. It must be the first write on
// the archive; readers may reject a file where it is not the first entry
// or is compressed.
func (w *archiveWriter) writeMimetype() error {
	if len(w.written) != 0 {
		return &PackagingError{Reason: "mimetype is not the first archive entry"}
	}
	return w.write("mimetype", []byte(mimetypeContent), zip.Store)
}

// add writes a deflated archive entry.
func (w *archiveWriter) add(name string, data []byte) error {
	return w.write(name, data, zip.Deflate)
}

func (w *archiveWriter) write(name string, data []byte, method uint16) error {
	if !isSafePath(name) {
		return &PackagingError{Reason: fmt.Sprintf("unsafe archive entry path %q", name)}
	}
	if w.written[name] {
		return &PackagingError{Reason: fmt.Sprintf("duplicate archive entry %q", name)}
	}

	hdr := &zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: w.modified,
	}
	fw, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("epubgen: create archive entry %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("epubgen: write archive entry %s: %w", name, err)
	}
	w.written[name] = true
	return nil
}

// has reports whether an entry with the given path has been written.
func (w *archiveWriter) has(name string) bool {
	return w.written[name]
}

// close finalises the archive and returns its bytes.
func (w *archiveWriter) close() ([]byte, error) {
	if err := w.zw.Close(); err != nil {
		return nil, fmt.Errorf("epubgen: close archive: %w", err)
	}
	return w.buf.Bytes(), nil
}

// isSafePath checks whether p is a safe ZIP-internal path that does not
// escape the archive root via path traversal.
func isSafePath(p string) bool {
	if p == "" {
		return false
	}
	cleaned := path.Clean(p)
	if cleaned != p {
		return false
	}
	if strings.HasPrefix(cleaned, "/") {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}
