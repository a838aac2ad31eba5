package epubgen

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the epubgen package.
var (
	// ErrEmptyDocument indicates the Markdown input contains no usable
	// content after trimming whitespace.
	ErrEmptyDocument = errors.New("epubgen: document has no usable content")

	// ErrNoChapters indicates a Book handed to Build contains no chapters.
	// This is a structural invariant violation: the splitter always
	// produces at least one chapter for non-empty input.
	ErrNoChapters = errors.New("epubgen: book has no chapters")
)

// UnsupportedAssetTypeError is returned when a cover or inline image has a
// media type outside the configured allow-list.
type UnsupportedAssetTypeError struct {
	// Name identifies the offending asset ("cover" or the image reference name).
	Name string

	// MediaType is the declared media type that was rejected.
	MediaType string
}

func (e *UnsupportedAssetTypeError) Error() string {
	return fmt.Sprintf("epubgen: unsupported media type %q for asset %q", e.MediaType, e.Name)
}

// AssetTooLargeError is returned when an input payload exceeds its
// configured size ceiling. Limit carries the ceiling so callers can build
// user-facing messages without knowledge of engine configuration.
type AssetTooLargeError struct {
	// Name identifies the offending payload ("content", "cover", or the
	// image reference name).
	Name string

	// Size is the actual payload size in bytes.
	Size int64

	// Limit is the configured ceiling in bytes.
	Limit int64
}

func (e *AssetTooLargeError) Error() string {
	return fmt.Sprintf("epubgen: asset %q is %d bytes, exceeds limit of %d bytes", e.Name, e.Size, e.Limit)
}

// PackagingError indicates the assembler detected an internal
// manifest/spine/payload inconsistency before finishing the archive. It
// should not occur in correct code; when it does, no archive is returned.
type PackagingError struct {
	// Reason describes the inconsistency.
	Reason string
}

func (e *PackagingError) Error() string {
	return "epubgen: packaging inconsistency: " + e.Reason
}
