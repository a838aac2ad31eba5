package epubgen

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// coverAssetID is the fixed manifest id of the cover image.
const coverAssetID = "cover-image"

// contentDir is the archive directory holding the package document and all
// content files.
const contentDir = "OEBPS"

// imagesDir is the archive directory holding image payloads.
const imagesDir = contentDir + "/images"

// imageExtensions maps each allow-listed image media type to its archive
// file extension. Media types outside this map are rejected.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// normalizeImageMediaType lowercases and trims a declared media type and
// folds the common "image/jpg" spelling into "image/jpeg".
func normalizeImageMediaType(mt string) string {
	mt = strings.ToLower(strings.TrimSpace(mt))
	if mt == "image/jpg" {
		return "image/jpeg"
	}
	return mt
}

// assetRegistry validates and registers image payloads, deduplicating
// identical content and assigning manifest ids in first-seen order.
type assetRegistry struct {
	limit  int64
	cover  *Asset
	assets []Asset

	// byChecksum maps payload checksums to archive hrefs for dedup.
	byChecksum map[[sha256.Size]byte]string

	// byName maps Markdown reference names to archive hrefs.
	byName map[string]string

	nextOrdinal int
}

// newAssetRegistry creates an empty registry with the given per-payload
// byte ceiling.
func newAssetRegistry(limit int64) *assetRegistry {
	return &assetRegistry{
		limit:       limit,
		byChecksum:  make(map[[sha256.Size]byte]string),
		byName:      make(map[string]string),
		nextOrdinal: 1,
	}
}

// validateImage checks a payload against the media-type allow-list and the
// size ceiling. It returns the archive file extension for the media type.
func (r *assetRegistry) validateImage(name string, data []byte, mediaType string) (string, error) {
	mt := normalizeImageMediaType(mediaType)
	ext, ok := imageExtensions[mt]
	if !ok {
		return "", &UnsupportedAssetTypeError{Name: name, MediaType: mediaType}
	}
	if int64(len(data)) > r.limit {
		return "", &AssetTooLargeError{Name: name, Size: int64(len(data)), Limit: r.limit}
	}
	return ext, nil
}

// setCover validates and registers the cover image under the fixed
// "cover-image" manifest id.
func (r *assetRegistry) setCover(in *CoverInput) error {
	ext, err := r.validateImage("cover", in.Data, in.MediaType)
	if err != nil {
		return err
	}
	r.cover = &Asset{
		ID:        coverAssetID,
		MediaType: normalizeImageMediaType(in.MediaType),
		Path:      imagesDir + "/cover." + ext,
		Data:      in.Data,
	}
	r.byChecksum[sha256.Sum256(in.Data)] = opfHref(r.cover.Path)
	return nil
}

// addImage validates and registers one inline image. Identical payloads
// collapse onto the already-registered entry; distinct payloads get ids
// "img-1", "img-2", ... in first-seen order.
func (r *assetRegistry) addImage(in ImageInput) error {
	ext, err := r.validateImage(in.Name, in.Data, in.MediaType)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(in.Data)
	if href, ok := r.byChecksum[sum]; ok {
		r.byName[in.Name] = href
		return nil
	}

	a := Asset{
		ID:        fmt.Sprintf("img-%d", r.nextOrdinal),
		MediaType: normalizeImageMediaType(in.MediaType),
		Path:      fmt.Sprintf("%s/img-%d.%s", imagesDir, r.nextOrdinal, ext),
		Data:      in.Data,
	}
	r.nextOrdinal++
	r.assets = append(r.assets, a)

	href := opfHref(a.Path)
	r.byChecksum[sum] = href
	r.byName[in.Name] = href
	return nil
}

// resolve maps a Markdown image reference name to its archive href,
// relative to the content directory (chapter files live at its root).
func (r *assetRegistry) resolve(name string) (string, bool) {
	href, ok := r.byName[name]
	return href, ok
}

// opfHref converts an archive path into an href relative to the content
// directory, the form used in the manifest and in chapter markup.
func opfHref(path string) string {
	return strings.TrimPrefix(path, contentDir+"/")
}
